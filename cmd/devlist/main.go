// Command devlist exports every device of a Kismet capture, whatever its
// declared type, to CSV, KML or Kafka.
//
// Usage:
//
//	devlist -in Kismet-20240426.kismet -type Client -verbose -csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/couchcryptid/kismet-analyzer/internal/adapter/csvexport"
	"github.com/couchcryptid/kismet-analyzer/internal/adapter/kismetdb"
	"github.com/couchcryptid/kismet-analyzer/internal/adapter/kml"
	"github.com/couchcryptid/kismet-analyzer/internal/cli"
	"github.com/couchcryptid/kismet-analyzer/internal/domain"
	"github.com/couchcryptid/kismet-analyzer/internal/pipeline"
)

func main() {
	cli.Main("devlist", run)
}

func run(ctx context.Context, rt *cli.Runtime, args []string) error {
	fs := flag.NewFlagSet("devlist", flag.ContinueOnError)
	in := fs.String("in", "", "input .kismet file or postgres:// DSN (required)")
	out := fs.String("out", "", "output filename prefix (default: input without .kismet)")
	title := fs.String("title", "Kismet", "title embedded in the KML file")
	toCSV := fs.Bool("csv", false, "export results to <prefix>-devices.csv")
	toKML := fs.Bool("kml", false, "export results to <prefix>-devices.kml")
	toKafka := fs.Bool("kafka", false, "publish results to KAFKA_TOPIC")
	strongest := fs.Bool("strongest-point", false, "plot points at the strongest signal instead of the average")
	devType := fs.String("type", "", "only export devices whose type contains this string")
	verbose := fs.Bool("verbose", false, "print MAC, type and channel of each device to stdout")
	if err := cli.Parse(fs, args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return cli.Usagef("missing required flag: -in")
	}

	var opts []domain.FilterOption
	if *devType != "" {
		opts = append(opts, domain.WithDeviceType(*devType))
	}
	filter, err := domain.NewFilter(opts...)
	if err != nil {
		return cli.UsageError(err)
	}

	src, err := kismetdb.Open(ctx, *in, kismetdb.SelectAll, rt.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			rt.Logger.Error("kismet db close error", "error", err)
		}
	}()

	p := pipeline.New[domain.Device](src, pipeline.NewDeviceNormalizer(filter, *strongest), rt.Logger, rt.Metrics)
	shutdown := rt.Serve(p)
	defer shutdown()

	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if *verbose {
		for _, d := range res.Entities {
			fmt.Fprintf(rt.Stdout, "%-20s%-40s%-10s\n", d.MAC, d.Type, d.Channel)
		}
	}

	prefix := cli.OutputPrefix(*in, *out)
	if *toCSV {
		if err := rt.ExportFile(prefix+"-devices.csv", "csv", func(w io.Writer) (int, error) {
			return csvexport.WriteDevices(w, res.Entities)
		}); err != nil {
			return err
		}
	}
	if *toKML {
		if err := rt.ExportFile(prefix+"-devices.kml", "kml", func(w io.Writer) (int, error) {
			return kml.WriteDevices(w, *title, res.Entities)
		}); err != nil {
			return err
		}
	}
	if *toKafka {
		return rt.Publish(ctx, domain.Entities(res.Entities))
	}
	return nil
}
