//go:build !tinygo

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/littlefs"

	"flashhal/partition"
)

var fsFlags struct {
	src string
}

var fsCmd = &cobra.Command{
	Use:   "fs",
	Short: "Filesystem operations on a data partition.",
}

var fsFormatCmd = &cobra.Command{
	Use:   "format <partition>",
	Short: "Format a partition with LittleFS, optionally importing a host directory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := partition.ParseID(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(s *session) error {
			files, err := formatPartition(s, id, fsFlags.src)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: littlefs formatted, %d files imported\n", id, files)
			return nil
		})
	},
}

func newLFS(dev tinyfs.BlockDevice) *littlefs.LFS {
	return littlefs.New(dev).Configure(&littlefs.Config{
		CacheSize:     512,
		LookaheadSize: 512,
		BlockCycles:   100,
	})
}

func formatPartition(s *session, id partition.ID, srcDir string) (int, error) {
	if _, ok := s.flash.PartitionInfo(id); !ok {
		return 0, fmt.Errorf("unknown partition %s", id)
	}
	dev := s.flash.Device(id)
	if err := dev.EraseBlocks(0, dev.Size()/dev.EraseBlockSize()); err != nil {
		return 0, err
	}

	lfs := newLFS(dev)
	if err := lfs.Format(); err != nil {
		return 0, fmt.Errorf("format %s: %w", id, err)
	}
	if err := lfs.Mount(); err != nil {
		return 0, fmt.Errorf("mount %s: %w", id, err)
	}
	defer func() { _ = lfs.Unmount() }()

	if srcDir == "" {
		return 0, nil
	}
	dirs, files, err := walkSource(srcDir)
	if err != nil {
		return 0, err
	}
	for _, d := range dirs {
		if err := lfs.Mkdir(d, 0o755); err != nil {
			return 0, fmt.Errorf("mkdir %q: %w", d, err)
		}
	}
	for _, fpath := range files {
		hostPath := filepath.Join(srcDir, filepath.FromSlash(strings.TrimPrefix(fpath, "/")))
		if err := copyFile(lfs, hostPath, fpath); err != nil {
			return 0, err
		}
	}
	return len(files), nil
}

// walkSource lists the directories and regular files under srcDir as sorted
// absolute filesystem paths.
func walkSource(srcDir string) (dirs, files []string, err error) {
	srcDir = filepath.Clean(srcDir)
	st, err := os.Stat(srcDir)
	if err != nil {
		return nil, nil, fmt.Errorf("stat src %q: %w", srcDir, err)
	}
	if !st.IsDir() {
		return nil, nil, fmt.Errorf("src %q is not a directory", srcDir)
	}

	walkErr := filepath.WalkDir(srcDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir || entry.Type()&os.ModeSymlink != 0 {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		lfsPath := "/" + filepath.ToSlash(rel)
		if entry.IsDir() {
			dirs = append(dirs, lfsPath)
			return nil
		}
		if entry.Type().IsRegular() {
			files = append(files, lfsPath)
		}
		return nil
	})
	if walkErr != nil {
		return nil, nil, fmt.Errorf("walk src %q: %w", srcDir, walkErr)
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files, nil
}

func copyFile(lfs *littlefs.LFS, hostPath string, lfsPath string) error {
	in, err := os.Open(hostPath)
	if err != nil {
		return fmt.Errorf("open %q: %w", hostPath, err)
	}
	defer func() { _ = in.Close() }()

	w, err := lfs.OpenFile(lfsPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("open %q: %w", lfsPath, err)
	}

	buf := make([]byte, 4*1024)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			wrote, werr := w.Write(buf[:n])
			if werr != nil {
				_ = w.Close()
				return fmt.Errorf("write %q: %w", lfsPath, werr)
			}
			if wrote != n {
				_ = w.Close()
				return fmt.Errorf("write %q: short write", lfsPath)
			}
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		_ = w.Close()
		return fmt.Errorf("read %q: %w", hostPath, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("close %q: %w", lfsPath, err)
	}
	return nil
}

func init() {
	fsFormatCmd.Flags().StringVar(&fsFlags.src, "src", "", "Host directory to import after formatting.")
	fsCmd.AddCommand(fsFormatCmd)
	rootCmd.AddCommand(fsCmd)
}
