// Extracts traffic signal positions from an openstreetmap extract and writes
// the stop line section of the detector config. Signal nodes that belong to
// the same intersection are collapsed into one stop line by bucketing them
// into h3 cells.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"lintang/lightwatch/pkg/config"

	"github.com/k0kubun/go-ansi"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/schollz/progressbar/v3"
	"github.com/uber/h3-go/v4"
	"gopkg.in/yaml.v3"
)

var (
	mapFile = flag.String("f", "map.osm.pbf", "openstreetmap extract to scan for traffic signals")
	outFile = flag.String("o", "traffic_light_config.yaml", "output yaml config path")

	// res 11 cells are ~25m across, about one intersection
	cellResolution = flag.Int("res", 11, "h3 resolution used to merge signal nodes of one intersection")
)

func main() {
	flag.Parse()

	f, err := os.Open(*mapFile)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 3)
	defer scanner.Close()

	signals := []*osm.Node{}
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}
		node := o.(*osm.Node)
		if node.Tags.Find("highway") == "traffic_signals" {
			signals = append(signals, node)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}

	bar := progressbar.NewOptions(len(signals),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan]merging signal nodes per intersection...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	type acc struct {
		sumLat float64
		sumLon float64
		n      float64
	}
	intersections := map[h3.Cell]*acc{}
	for _, node := range signals {
		cell := h3.LatLngToCell(h3.NewLatLng(node.Lat, node.Lon), *cellResolution)
		a, ok := intersections[cell]
		if !ok {
			a = &acc{}
			intersections[cell] = a
		}
		a.sumLat += node.Lat
		a.sumLon += node.Lon
		a.n++
		bar.Add(1)
	}

	// one stop line per cell, at the centroid of its signal nodes. The pairs
	// are [lat, lon]; transform them into the map frame the rest of the node
	// runs in if that frame is not geographic.
	cfg := config.Default()
	for _, a := range intersections {
		cfg.StopLinePositions = append(cfg.StopLinePositions, []float64{a.sumLat / a.n, a.sumLon / a.n})
	}

	bb, err := yaml.Marshal(&cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*outFile, bb, 0o644); err != nil {
		log.Fatal(err)
	}

	log.Printf("wrote %d stop lines from %d signal nodes to %s", len(cfg.StopLinePositions), len(signals), *outFile)
}
