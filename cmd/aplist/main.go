// Command aplist exports the Wi-Fi access points of a Kismet capture to CSV,
// KML or Kafka.
//
// Usage:
//
//	aplist -in Kismet-20240426.kismet -ssid 'Home.*' -encryption WPA -csv -kml
package main

import (
	"context"
	"flag"
	"io"

	"github.com/couchcryptid/kismet-analyzer/internal/adapter/csvexport"
	"github.com/couchcryptid/kismet-analyzer/internal/adapter/kismetdb"
	"github.com/couchcryptid/kismet-analyzer/internal/adapter/kml"
	"github.com/couchcryptid/kismet-analyzer/internal/cli"
	"github.com/couchcryptid/kismet-analyzer/internal/domain"
	"github.com/couchcryptid/kismet-analyzer/internal/pipeline"
)

func main() {
	cli.Main("aplist", run)
}

func run(ctx context.Context, rt *cli.Runtime, args []string) error {
	fs := flag.NewFlagSet("aplist", flag.ContinueOnError)
	in := fs.String("in", "", "input .kismet file or postgres:// DSN (required)")
	out := fs.String("out", "", "output filename prefix (default: input without .kismet)")
	title := fs.String("title", "Kismet", "title embedded in the KML file")
	ssid := fs.String("ssid", "", "only export networks whose name matches this regex")
	excludeSSID := fs.String("exclude-ssid", "", "skip networks whose name matches this regex")
	strongest := fs.Bool("strongest-point", false, "plot points at the strongest signal instead of the average")
	encryption := fs.String("encryption", "", "only export networks whose encryption contains this string")
	toCSV := fs.Bool("csv", false, "export results to <prefix>.csv")
	toKML := fs.Bool("kml", false, "export results to <prefix>.kml")
	toKafka := fs.Bool("kafka", false, "publish results to KAFKA_TOPIC")
	if err := cli.Parse(fs, args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return cli.Usagef("missing required flag: -in")
	}

	var opts []domain.FilterOption
	if *ssid != "" {
		opts = append(opts, domain.WithSSIDPattern(*ssid))
	}
	if *excludeSSID != "" {
		opts = append(opts, domain.WithExcludeSSIDPattern(*excludeSSID))
	}
	if *encryption != "" {
		opts = append(opts, domain.WithEncryption(*encryption))
	}
	filter, err := domain.NewFilter(opts...)
	if err != nil {
		return cli.UsageError(err)
	}

	src, err := kismetdb.Open(ctx, *in, kismetdb.SelectAccessPoints, rt.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			rt.Logger.Error("kismet db close error", "error", err)
		}
	}()

	p := pipeline.New[domain.AccessPoint](src, pipeline.NewAccessPointNormalizer(filter, *strongest), rt.Logger, rt.Metrics)
	shutdown := rt.Serve(p)
	defer shutdown()

	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	prefix := cli.OutputPrefix(*in, *out)
	if *toCSV {
		if err := rt.ExportFile(prefix+".csv", "csv", func(w io.Writer) (int, error) {
			return csvexport.WriteAccessPoints(w, res.Entities)
		}); err != nil {
			return err
		}
	}
	if *toKML {
		if err := rt.ExportFile(prefix+".kml", "kml", func(w io.Writer) (int, error) {
			return kml.WriteAccessPoints(w, *title, res.Entities)
		}); err != nil {
			return err
		}
	}
	if *toKafka {
		return rt.Publish(ctx, domain.Entities(res.Entities))
	}
	return nil
}
