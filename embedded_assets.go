package main

import (
	"embed"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

//go:embed dist/*
var landingContent embed.FS

const indexFile = "index.html"

// embeddedAssets exposes the built-in landing page used when the asset
// directory has no index.html.
func embeddedAssets() http.FileSystem {
	stripped, err := fs.Sub(landingContent, "dist")
	if err != nil {
		panic(err)
	}
	return http.FS(stripped)
}

// indexHandler serves the landing document for GET /
func (app *App) indexHandler(c *gin.Context) {
	if app.Assets != nil && serveAssetFile(c, app.Assets, indexFile) {
		return
	}
	if serveAssetFile(c, embeddedAssets(), indexFile) {
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

// assetHandler serves any other GET request from the asset directory.
func (app *App) assetHandler(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
	if name == "" {
		name = indexFile
	}
	if app.Assets != nil && serveAssetFile(c, app.Assets, name) {
		return
	}

	log.Debugf("File not found: %s", name)
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

// serveAssetFile writes the named regular file from fsys and reports whether
// it did. Directories are never listed.
func serveAssetFile(c *gin.Context, fsys http.FileSystem, name string) bool {
	f, err := fsys.Open("/" + name)
	if err != nil {
		return false
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil || stat.IsDir() {
		return false
	}

	if mime.TypeByExtension(filepath.Ext(name)) == "" {
		// Unknown extension, detect from content.
		if detected, err := mimetype.DetectReader(f); err == nil {
			c.Header("Content-Type", detected.String())
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			c.Status(http.StatusInternalServerError)
			return true
		}
	}

	http.ServeContent(c.Writer, c.Request, stat.Name(), stat.ModTime(), f)
	return true
}
