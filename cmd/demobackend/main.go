// Command demobackend starts the stub reporting backend for local
// development and demos.
// Usage: go run ./cmd/demobackend [port]
// Default port: 9090
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/carbonlens/ghgreview/internal/demoserver"
)

func main() {
	cfg := demoserver.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	fmt.Println("===========================================")
	fmt.Println("   GHG Review - Demo Reporting Backend")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Printf("Serves report %q with versions 1 and 2, plus a\n", demoserver.DemoReportID)
	fmt.Println("canned diff touching every review section:")
	fmt.Println("  - Operation information and person responsible")
	fmt.Println("  - Facility activity data down to fuel and emission level")
	fmt.Println("  - A whole added activity (Flaring)")
	fmt.Println("  - Emission summaries, production data, allocation")
	fmt.Println("  - Compliance summary and timestamp noise")
	fmt.Println()

	server := demoserver.NewDemoServer(cfg)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
