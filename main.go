// Copyright (c) 2025 SeeKT
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swappy/config"
	"swappy/gui"
	"swappy/logging"
	"swappy/screenshot"
)

// version はビルド時に -ldflags で設定されます。
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		showVersion bool
		file        string
		outputFile  string
	)

	cmd := &cobra.Command{
		Use:           "swappy",
		Short:         "Screenshot annotation tool",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "swappy version %s\n", version)
				return nil
			}
			return run(file, outputFile)
		},
	}

	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Print version and quit")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Load a file at a specific path, use - to read from stdin")
	cmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "Print the final surface to the given file when exiting, use - to print to stdout")

	return cmd
}

func run(file, outputFile string) error {
	logger := logging.New(os.Stderr, logging.ParseLevel(os.Getenv("SWAPPY_LOG_LEVEL")))

	// 設定のロード
	cfg := config.NewLoader(logger).Load("")
	logger.Debug("config loaded", "config", fmt.Sprintf("%+v", cfg))

	if file == "" {
		err := errors.New("no file given, did you use -f option?")
		logger.Error(err.Error())
		return err
	}

	if file == screenshot.StdioPath {
		tmp, err := screenshot.DumpStdin(os.Stdin)
		if err != nil {
			logger.Error("unable to read image from stdin", "err", err)
			return err
		}
		defer func() {
			logger.Debug("deleting temporary file", "path", tmp)
			if err := os.Remove(tmp); err != nil {
				logger.Warn("unable to delete temporary file", "path", tmp, "err", err)
			}
		}()
		file = tmp
	}

	img, err := screenshot.LoadImage(file)
	if err != nil {
		logger.Error("unable to load image", "err", err)
		return err
	}

	// GUIアプリケーションの初期化と実行
	appCtx := gui.NewApp(cfg, gui.Options{
		Image:      img,
		OutputFile: outputFile,
		Logger:     logger,
	})
	appCtx.Run()
	return nil
}
