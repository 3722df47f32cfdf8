//go:build !tinygo

package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"flashhal/partition"
)

var stressFlags struct {
	rounds int
}

var stressCmd = &cobra.Command{
	Use:   "stress <partition> [partition...]",
	Short: "Erase, write and verify partitions from concurrent goroutines.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]partition.ID, 0, len(args))
		for _, a := range args {
			id, err := partition.ParseID(a)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return withSession(cmd, func(s *session) error {
			start := time.Now()
			var g errgroup.Group
			for _, id := range ids {
				g.Go(func() error { return stressPartition(s, id, stressFlags.rounds) })
			}
			if err := g.Wait(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d partitions x %d rounds ok in %s\n",
				len(ids), stressFlags.rounds, time.Since(start).Round(time.Millisecond))
			return nil
		})
	},
}

func stressPartition(s *session, id partition.ID, rounds int) error {
	desc, ok := s.flash.PartitionInfo(id)
	if !ok {
		return fmt.Errorf("unknown partition %s", id)
	}
	sector := s.flash.Config().SectorSize
	if desc.Length < sector {
		return fmt.Errorf("%s: partition smaller than one sector", id)
	}

	pattern := make([]byte, sector)
	got := make([]byte, sector)
	for r := 0; r < rounds; r++ {
		for i := range pattern {
			pattern[i] = byte(i + r + int(id))
		}
		if err := s.flash.Erase(id, 0, sector); err != nil {
			return err
		}
		off := uint32(0)
		if err := s.flash.Write(id, &off, pattern); err != nil {
			return err
		}
		off = 0
		if err := s.flash.Read(id, &off, got); err != nil {
			return err
		}
		if !bytes.Equal(got, pattern) {
			return fmt.Errorf("%s: round %d: readback mismatch", id, r)
		}
	}
	return nil
}

func init() {
	stressCmd.Flags().IntVar(&stressFlags.rounds, "rounds", 16, "Erase/write/verify rounds per partition.")
	rootCmd.AddCommand(stressCmd)
}
