//go:build !tinygo

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"flashhal/flash"
	"flashhal/hal"
	"flashhal/internal/config"
	"flashhal/partition"
)

var mkimageFlags struct {
	app string
}

var mkimageCmd = &cobra.Command{
	Use:   "mkimage",
	Short: "Create an erased flash image, optionally with an application binary.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		lookup, err := partition.LookupFor(cfg.Capacity)
		if err != nil {
			return err
		}

		img, err := hal.CreateFileFlash(cfg.Path, cfg.Capacity.Size())
		if err != nil {
			return err
		}
		defer func() { _ = img.Close() }()

		if mkimageFlags.app == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s erased\n", cfg.Path, cfg.Capacity)
			return nil
		}

		app, ok := lookup(partition.Application)
		if !ok {
			return fmt.Errorf("no application partition in %s table", cfg.Capacity)
		}
		firmware, err := os.ReadFile(mkimageFlags.app)
		if err != nil {
			return fmt.Errorf("read %q: %w", mkimageFlags.app, err)
		}
		if len(firmware) == 0 {
			return fmt.Errorf("%q is empty", mkimageFlags.app)
		}
		if uint64(len(firmware)) > uint64(app.Length) {
			return fmt.Errorf("%q: %d bytes do not fit application partition (%d bytes)",
				mkimageFlags.app, len(firmware), app.Length)
		}
		if _, err := img.WriteAt(firmware, int64(app.Start)); err != nil {
			return fmt.Errorf("program application: %w", err)
		}

		codeEnd := app.Start + uint32(len(firmware)) - 1
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %s, application %d bytes at 0x%X, code end 0x%X\n",
			cfg.Path, cfg.Capacity, len(firmware), app.Start, codeEnd)
		fmt.Fprintf(out, "protect the image with --code-end 0x%X or %s=0x%X\n", codeEnd, config.EnvCodeEnd, codeEnd)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the partition table.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		lookup, err := partition.LookupFor(cfg.Capacity)
		if err != nil {
			return err
		}
		parts := partition.NewResolver(lookup, cfg.KV)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "image %s, capacity %s\n", cfg.Path, cfg.Capacity)
		codeEnd := cfg.CodeEnd
		if !cfg.HasCodeEnd {
			codeEnd = flash.DefaultCodeEnd(parts)
		}
		fmt.Fprintf(out, "code end 0x%X\n", codeEnd)
		if kv := parts.KV(); kv.Enabled {
			fmt.Fprintf(out, "kv split: %s[0:0x%X] then %s\n", kv.Primary, kv.PrimarySize, kv.Secondary)
		}
		return writeTable(out, parts)
	},
}

func writeTable(w io.Writer, parts *partition.Resolver) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tOWNER\tSTART\tLENGTH\tDESCRIPTION")
	for id := partition.ID(0); id < partition.Max; id++ {
		d, ok := parts.Info(id)
		if !ok || d.Owner == partition.OwnerNone {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t0x%06X\t0x%06X\t%s\n", id, id, d.Owner, d.Start, d.Length, d.Description)
	}
	return tw.Flush()
}

func init() {
	mkimageCmd.Flags().StringVar(&mkimageFlags.app, "app", "", "Application binary to program at the application partition.")
	rootCmd.AddCommand(mkimageCmd, infoCmd)
}
