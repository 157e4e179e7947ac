package network

import (
	"fmt"
	"net"
	"strings"
)

// Default to ethernet standard MTU if no other MTU is found
const defaultMTU int = 1500

// Retrieves IP + UDP header overhead for the destination address family
func getTransportOverhead(destination net.IP) (overhead int) {
	const ip4Overhead int = 60
	const ip6Overhead int = 80
	const udpOverhead int = 8

	if destination.To4() != nil {
		overhead = ip4Overhead + udpOverhead
	} else {
		overhead = ip6Overhead + udpOverhead
	}
	return
}

// Determines the maximum UDP payload that leaves this host unfragmented toward destination
func FindSendingMaxUDPPayload(destination string) (maxPayloadSize int, err error) {
	destinationIP := net.ParseIP(strings.Trim(destination, "[]"))
	if destinationIP == nil {
		err = fmt.Errorf("invalid destination address '%s'", destination)
		return
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		err = fmt.Errorf("failed to list network interfaces: %w", err)
		return
	}

	// Loopback destinations always leave through a loopback interface
	var mtu int
	if destinationIP.IsLoopback() {
		for _, iface := range ifaces {
			if iface.Flags&net.FlagLoopback != 0 {
				mtu = iface.MTU
				break
			}
		}
	} else {
		mtu = commonMTU(ifaces)
		if mtu == 0 {
			// Interfaces disagree, ask the route table
			var iface *net.Interface
			iface, err = getInterfaceForDestination(destinationIP)
			if err != nil {
				return
			}
			mtu = iface.MTU
		}
	}

	// Safety check - assign default
	if mtu <= 0 {
		mtu = defaultMTU
	}

	maxPayloadSize = mtu - getTransportOverhead(destinationIP)
	return
}

// Returns the MTU shared by all non-loopback interfaces, or 0 if they differ
func commonMTU(ifaces []net.Interface) (mtu int) {
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if mtu == 0 {
			mtu = iface.MTU
		} else if mtu != iface.MTU {
			mtu = 0
			return
		}
	}
	return
}

// Determines the interface used to reach a given destination address
func getInterfaceForDestination(destination net.IP) (iface *net.Interface, err error) {
	// Quick dial to see what source interface the system would use, nothing is sent
	conn, err := net.DialUDP("udp", nil, &net.UDPAddr{IP: destination, Port: 9})
	if err != nil {
		err = fmt.Errorf("failed to find interface for destination %s: %w", destination, err)
		return
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	iface, err = getInterfaceForAddress(localAddr.IP)
	return
}

// Retrieves the network interface holding a specific local address
func getInterfaceForAddress(address net.IP) (iface *net.Interface, err error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return
	}

	for index := range ifaces {
		addrs, addrErr := ifaces[index].Addrs()
		if addrErr != nil {
			continue
		}

		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if ok && ipNet.IP.Equal(address) {
				iface = &ifaces[index]
				return
			}
		}
	}

	err = fmt.Errorf("no matching interface found for address %v", address)
	return
}
