// Command clientlist prints the MAC addresses of clients seen associating with
// any access point whose name matches -ssid, one per line in lexical order.
//
// Usage:
//
//	clientlist -in Kismet-20240426.kismet -ssid 'HomeNet'
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/couchcryptid/kismet-analyzer/internal/adapter/kismetdb"
	"github.com/couchcryptid/kismet-analyzer/internal/cli"
	"github.com/couchcryptid/kismet-analyzer/internal/domain"
	"github.com/couchcryptid/kismet-analyzer/internal/pipeline"
)

func main() {
	cli.Main("clientlist", run)
}

func run(ctx context.Context, rt *cli.Runtime, args []string) error {
	fs := flag.NewFlagSet("clientlist", flag.ContinueOnError)
	in := fs.String("in", "", "input .kismet file or postgres:// DSN (required)")
	ssid := fs.String("ssid", "", "network name or name regex (required)")
	if err := cli.Parse(fs, args); err != nil {
		return err
	}
	if *in == "" || *ssid == "" {
		fs.Usage()
		return cli.Usagef("missing required flags: -in, -ssid")
	}

	filter, err := domain.NewFilter(domain.WithSSIDPattern(*ssid))
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

	p := pipeline.New[domain.AccessPoint](src, pipeline.NewAccessPointNormalizer(filter, false), rt.Logger, rt.Metrics)
	shutdown := rt.Serve(p)
	defer shutdown()

	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	clients := domain.NewClientSet()
	for _, ap := range res.Entities {
		clients.Add(ap.Clients)
	}
	sorted := clients.Sorted()
	for _, mac := range sorted {
		fmt.Fprintln(rt.Stdout, mac)
	}
	rt.Metrics.EntitiesExported.WithLabelValues("stdout").Add(float64(len(sorted)))
	rt.Logger.Info("listed clients", "count", len(sorted), "access_points", len(res.Entities))
	return nil
}
