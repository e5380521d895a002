package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/fatih/color"

	"typing-tutor/credential"
)

// logStartup prints where the server can be reached and the credential state.
func (app *App) logStartup(ctx context.Context) {
	printBanner(os.Stdout, port, hostIPv4Addresses())

	log.Infof("Serving static files from '%s' (index.html is the landing page)", publicDir)
	log.Infof("API key location: %s", app.Credentials.Location())

	if existing, ok := app.Credentials.Load(ctx); ok {
		log.Infof("Found existing API key (%s)", credential.Mask(existing))
	} else {
		log.Warn("No API key found - users will need to set one")
	}
}

// printBanner writes the local URL followed by one URL per network address.
func printBanner(w io.Writer, port string, addresses []string) {
	bold := color.New(color.FgCyan, color.Bold)
	bold.Fprintf(w, "Typing tutor server running at http://localhost:%s\n", port)

	if len(addresses) == 0 {
		color.New(color.FgYellow).Fprintln(w, "No external IPv4 network addresses found")
		return
	}

	fmt.Fprintln(w, "Available network addresses:")
	green := color.New(color.FgGreen)
	for _, address := range addresses {
		green.Fprintf(w, "   http://%s\n", net.JoinHostPort(address, port))
	}
}

// hostIPv4Addresses lists the non-loopback IPv4 addresses of all interfaces
// that are up. Errors are logged and yield an empty list.
func hostIPv4Addresses() []string {
	interfaces, err := net.Interfaces()
	if err != nil {
		log.WithError(err).Warn("Failed to list network interfaces")
		return nil
	}

	var addresses []string
	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			log.WithError(err).WithField("interface", iface.Name).Debug("Failed to read interface addresses")
			continue
		}
		addresses = append(addresses, externalIPv4(addrs)...)
	}
	return addresses
}

// externalIPv4 keeps the IPv4, non-loopback entries of addrs.
func externalIPv4(addrs []net.Addr) []string {
	var out []string
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip == nil || ip.IsLoopback() {
			continue
		}
		if ip4 := ip.To4(); ip4 != nil {
			out = append(out, ip4.String())
		}
	}
	return out
}
