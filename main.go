package main

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"

	"github.com/carbonlens/ghgreview/internal/demoserver"
	"github.com/carbonlens/ghgreview/internal/logging"
	"github.com/carbonlens/ghgreview/internal/model"
	"github.com/carbonlens/ghgreview/internal/reportclient"
	"github.com/carbonlens/ghgreview/internal/review"
)

func printNode(node model.RenderNode, depth int) {
	indent := strings.Repeat("  ", depth)
	line := indent + node.Title
	if node.Status != "" {
		line += fmt.Sprintf(" [%s]", node.Status)
	}
	if node.OldValue != nil || node.NewValue != nil {
		line += fmt.Sprintf(": %v -> %v", node.OldValue, node.NewValue)
	}
	fmt.Println(line)
	for _, child := range node.Children {
		printNode(child, depth+1)
	}
}

func main() {
	backend := httptest.NewServer(demoserver.NewDemoServer(demoserver.DefaultConfig()).Handler())
	defer backend.Close()

	logger := logging.NewStdoutLogger("demo")
	client, err := reportclient.New(reportclient.Config{BaseURL: backend.URL}, logger, backend.Client())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	records, err := client.GetDiff(context.Background(), demoserver.DemoReportID, "1", "2")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	engine := review.NewEngine(logger)
	tree := engine.Review(records, review.Options{
		Flow:                model.FlowSFO,
		RegistrationPurpose: model.PurposeOBPSRegulated,
	})

	for _, sec := range tree.Sections {
		printNode(sec, 0)
	}
}
