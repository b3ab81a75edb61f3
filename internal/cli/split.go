package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrianmusante/pipeline-tools/internal/batch"
	"github.com/adrianmusante/pipeline-tools/internal/fs"
	"github.com/adrianmusante/pipeline-tools/internal/logging"
	"github.com/adrianmusante/pipeline-tools/internal/timing"
	"github.com/adrianmusante/pipeline-tools/internal/tmpdir"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const defaultBatchSize = 100

var splitCmd = &cobra.Command{
	Use:   "split [flags] <input-file>",
	Short: "Split a file's lines into fixed-size batch files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Allow resolving some flags from env vars.
		if err := resolveBoolFlagFromEnv(cmd, flagDryRun, envDryRun); err != nil {
			return err
		}
		if err := resolveStringFlagFromEnv(cmd, flagWorkdir, envWorkdir); err != nil {
			return err
		}
		if err := resolveIntFlagFromEnv(cmd, flagBatchSize, envBatchSize); err != nil {
			return err
		}
		if err := resolveFloat64FlagFromEnv(cmd, flagRPS, envRPS); err != nil {
			return err
		}

		ctx := cmd.Context()
		log := logging.FromContext(ctx)

		inputPath := args[0]
		if inputPath == "-" {
			return errors.New("stdin is not supported yet; pass a file path")
		}

		outputDir, _ := cmd.Flags().GetString(flagOutput)
		dryRun, _ := cmd.Flags().GetBool(flagDryRun)
		workdir, _ := cmd.Flags().GetString(flagWorkdir)
		batchSize, _ := cmd.Flags().GetInt(flagBatchSize)
		rps, _ := cmd.Flags().GetFloat64(flagRPS)

		absInput, err := fs.ResolveAbsPath(inputPath)
		if err != nil {
			return err
		}
		inputPath = absInput

		if outputDir == "" {
			outputDir = filepath.Dir(inputPath)
		} else {
			absOut, err := fs.ResolveAbsPath(outputDir)
			if err != nil {
				return err
			}
			outputDir = absOut
		}

		if workdir != "" {
			absWorkdir, err := fs.ResolveAbsPath(workdir)
			if err != nil {
				return err
			}
			workdir = absWorkdir
		}

		lines, err := readLines(inputPath)
		if err != nil {
			return err
		}

		seq, err := batch.Seq(ctx, lines, batchSize)
		if err != nil {
			return err
		}

		stageDir, cleanup, err := tmpdir.New(workdir, "split")
		if err != nil {
			return err
		}
		log.Debug("staging batches", "dir", stageDir)
		if !dryRun { // Only defer cleanup if not dry-run, so staged files can be inspected afterwards.
			defer cleanup()
		}

		var limiter *rate.Limiter
		if rps > 0 {
			limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}

		written := 0
		err = timing.Track(ctx, "splitting "+filepath.Base(inputPath), func() error {
			for b := range seq {
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						return err
					}
				}
				name := batchFileName(written)
				if err := fs.WriteFile(strings.NewReader(joinLines(b)), filepath.Join(stageDir, name)); err != nil {
					return err
				}
				written++
			}
			return nil
		})
		if err != nil {
			return err
		}

		if dryRun {
			log.Info("dry-run: batches staged only", "dir", stageDir, "batches", written)
			return nil
		}

		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return err
		}
		for i := range written {
			name := batchFileName(i)
			if err := fs.CopyFile(filepath.Join(stageDir, name), filepath.Join(outputDir, name)); err != nil {
				return fmt.Errorf("publish %s: %w", name, err)
			}
		}

		log.Info("batches written", "dir", outputDir, "batches", written)
		return nil
	},
}

func batchFileName(i int) string {
	return fmt.Sprintf("batch-%04d.txt", i)
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fs.CloseOrLog(f, path)

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func init() {
	splitCmd.Flags().IntP(flagBatchSize, flagBatchSizeShorthand, defaultBatchSize, "Number of lines per batch file")
	splitCmd.Flags().StringP(flagOutput, flagOutputShorthand, "", "Output directory (optional; defaults to the input file's directory)")
	splitCmd.Flags().Bool(flagDryRun, false, "Stage batch files in the working directory without publishing them")
	splitCmd.Flags().StringP(flagWorkdir, flagWorkdirShorthand, "", "Working directory base. If set, a unique subdirectory is created per run")
	splitCmd.Flags().Float64(flagRPS, 0, "Max batch writes per second (0 disables rate limiting)")
}
