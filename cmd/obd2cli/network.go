package main

import "net"

func dialNetwork(network, address string) (net.Conn, error) {
	return net.Dial(network, address)
}
