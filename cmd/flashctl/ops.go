//go:build !tinygo

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"flashhal/internal/config"
	"flashhal/partition"
)

func parsePartArgs(args []string) (partition.ID, []uint32, error) {
	id, err := partition.ParseID(args[0])
	if err != nil {
		return 0, nil, err
	}
	nums := make([]uint32, 0, len(args)-1)
	for _, a := range args[1:] {
		n, err := config.ParseUint32(a)
		if err != nil {
			return 0, nil, fmt.Errorf("bad number %q: %w", a, err)
		}
		nums = append(nums, n)
	}
	return id, nums, nil
}

var eraseCmd = &cobra.Command{
	Use:   "erase <partition> <offset> <size>",
	Short: "Erase the sectors covering a partition range.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, n, err := parsePartArgs(args)
		if err != nil {
			return err
		}
		return withSession(cmd, func(s *session) error {
			return s.flash.Erase(id, n[0], n[1])
		})
	},
}

var readFlags struct {
	raw bool
}

var readCmd = &cobra.Command{
	Use:   "read <partition> <offset> <length>",
	Short: "Read a partition range and hex dump it.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, n, err := parsePartArgs(args)
		if err != nil {
			return err
		}
		buf := make([]byte, n[1])
		off := n[0]
		if err := withSession(cmd, func(s *session) error {
			return s.flash.Read(id, &off, buf)
		}); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if readFlags.raw {
			_, err := out.Write(buf)
			return err
		}
		d := hex.Dumper(out)
		if _, err := d.Write(buf); err != nil {
			return err
		}
		return d.Close()
	},
}

var writeCmd = &cobra.Command{
	Use:   "write <partition> <offset> <file|->",
	Short: "Write a file (or stdin) into an erased partition range.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, n, err := parsePartArgs(args[:2])
		if err != nil {
			return err
		}
		data, err := readInput(cmd, args[2])
		if err != nil {
			return err
		}
		off := n[0]
		if err := withSession(cmd, func(s *session) error {
			return s.flash.Write(id, &off, data)
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s, next offset 0x%X\n", len(data), id, off)
		return nil
	},
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	return data, nil
}

var secureCmd = &cobra.Command{
	Use:       "secure <enable|disable> <partition> [offset] [size]",
	Short:     "Change the device write protection.",
	Long:      "enable protects everything but the last protection block; disable falls back to protecting the lower half.",
	Args:      cobra.RangeArgs(2, 4),
	ValidArgs: []string{"enable", "disable"},
	RunE: func(cmd *cobra.Command, args []string) error {
		id, n, err := parsePartArgs(args[1:])
		if err != nil {
			return err
		}
		n = append(n, 0, 0)
		return withSession(cmd, func(s *session) error {
			switch args[0] {
			case "enable":
				return s.flash.EnableSecure(id, n[0], n[1])
			case "disable":
				return s.flash.DisableSecure(id, n[0], n[1])
			default:
				return fmt.Errorf("secure: unknown mode %q", args[0])
			}
		})
	},
}

func init() {
	readCmd.Flags().BoolVar(&readFlags.raw, "raw", false, "Write raw bytes instead of a hex dump.")
	rootCmd.AddCommand(eraseCmd, readCmd, writeCmd, secureCmd)
}
