package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stal/internal/driver"
)

var trainCmd = &cobra.Command{
	Use:   "train <DIRECTORY|JSON> <save-path>",
	Short: "Train an authorship model from a labeled corpus",
	Long: `Train builds a token-frequency model from a dataset and saves it to disk.

The dataset argument is either a directory whose subdirectories are authors
(every .txt file below an author counts as their text) or a .json manifest:
an array of objects with "author" and "text_path" properties.`,
	Args: cobra.ExactArgs(2),
	RunE: runTrain,
}

func runTrain(cmd *cobra.Command, args []string) error {
	datasetArg, savePath := args[0], args[1]

	opts, cleanup, err := setupRun(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := driver.TrainRun(cmd.Context(), datasetArg, savePath, opts)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "trained %s from %d samples\n", result.Model, result.Samples)
	fmt.Fprintf(cmd.OutOrStdout(), "model saved to %s\n", savePath)
	return nil
}
