package main

import "simpeg/internal/app/server"

func main() {
	server.Run()
}
