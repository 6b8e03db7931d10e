package main

import (
	"flag"
	"log"

	"github.com/gmkhealth/verdict-backend/cmd"
)

// These variables are set at build time with
// -ldflags "-X main.apiVersion=... -X main.segmentWriteKey=...".
var (
	apiVersion      = "dev"
	segmentWriteKey = ""
)

func main() {
	shouldRunServer := flag.Bool("server", false, "Run the verdict API server")
	shouldPrepareAdjudication := flag.Bool("prepare-adjudication", false,
		"Partition the ratings export into adjudication queues")
	shouldMergeDataset := flag.Bool("merge-dataset", false,
		"Merge adjudicated resolutions into the final dataset")
	shouldRecoverProgress := flag.Bool("recover-progress", false,
		"Recover the local progress stores from their remote copies")
	flag.Parse()

	compiledConfig := cmd.CompiledConfig{
		Version:         apiVersion,
		SegmentWriteKey: segmentWriteKey,
	}

	var err error
	switch {
	case *shouldRunServer:
		err = cmd.RunServer(compiledConfig)
	case *shouldPrepareAdjudication:
		err = cmd.RunPrepareAdjudication(compiledConfig)
	case *shouldMergeDataset:
		err = cmd.RunMergeDataset(compiledConfig)
	case *shouldRecoverProgress:
		err = cmd.RunRecoverProgress(compiledConfig)
	default:
		flag.Usage()
	}
	if err != nil {
		log.Fatal(err)
	}
}
