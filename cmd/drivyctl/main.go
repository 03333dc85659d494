// Command drivyctl queries a running storage bridge.
//
//	drivyctl [-addr URL | -grpc HOST:PORT] paths
//	drivyctl [-addr URL] channels
//	drivyctl [-addr URL | -grpc HOST:PORT] invoke <channel> <method> [json-arguments]
//
// With -grpc the calls go through the bridge's gRPC service instead of HTTP.
// Channel listing is only served over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/drivy/backend/internal/client"
	bridgegrpc "github.com/GriffinCanCode/drivy/backend/internal/grpc"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

// bridge is the transport a command talks to
type bridge interface {
	StoragePaths(ctx context.Context) ([]string, error)
	Invoke(ctx context.Context, channel, method string, args interface{}) (*types.Result, error)
}

type channelLister interface {
	Channels(ctx context.Context) ([]types.Channel, error)
}

var errChannelsOverGRPC = errors.New("channels is only available over HTTP")

func main() {
	addr := flag.String("addr", "http://localhost:8000", "bridge base URL")
	grpcAddr := flag.String("grpc", "", "bridge gRPC address; overrides -addr")
	timeout := flag.Duration("timeout", 30*time.Second, "overall command timeout")
	flag.Usage = usage
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var b bridge = client.New(client.DefaultConfig(*addr))
	if *grpcAddr != "" {
		gc, err := bridgegrpc.NewClient(*grpcAddr, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "drivyctl: %v\n", err)
			os.Exit(1)
		}
		defer gc.Close()
		b = gc
	}

	if err := run(ctx, b, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "drivyctl: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: drivyctl [-addr URL | -grpc HOST:PORT] paths|channels|invoke <channel> <method> [json-arguments]\n")
	flag.PrintDefaults()
}

func run(ctx context.Context, c bridge, args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "paths":
		roots, err := c.StoragePaths(ctx)
		if err != nil {
			return err
		}
		for _, r := range roots {
			fmt.Println(r)
		}
		return nil

	case "channels":
		lister, ok := c.(channelLister)
		if !ok {
			return errChannelsOverGRPC
		}
		channels, err := lister.Channels(ctx)
		if err != nil {
			return err
		}
		for _, ch := range channels {
			fmt.Printf("%s\t%s\n", ch.Name, ch.Description)
			for _, m := range ch.Methods {
				fmt.Printf("  %s -> %s\n", m.Name, m.Returns)
			}
		}
		return nil

	case "invoke":
		if len(args) < 3 {
			return fmt.Errorf("invoke needs <channel> <method>")
		}
		var arguments interface{}
		if len(args) > 3 {
			if err := sonic.UnmarshalString(args[3], &arguments); err != nil {
				return fmt.Errorf("invalid arguments: %w", err)
			}
		}
		result, err := c.Invoke(ctx, args[1], args[2], arguments)
		if err != nil {
			return err
		}
		out, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
