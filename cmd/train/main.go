package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-cropadvisor/config"
	"go-cropadvisor/ml"
	"go-cropadvisor/models"
)

type trainOptions struct {
	dataPath   string
	modelPath  string
	scalerPath string
	labelCol   string
	testSize   float64
	logLevel   string
	forest     ml.ForestConfig
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := trainOptions{forest: ml.DefaultForestConfig()}

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the crop recommendation model",
		Long: `Reads a labelled CSV (N,P,K,temperature,humidity,ph,rainfall,label),
fits a standard scaler and a random forest on 80% of the rows and writes
both artifacts for the server.

Example:
  train --data Crop_recommendation.csv --model model.gob --scaler standscaler.gob`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := config.NewLogger(opts.logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runTrain(cmd, opts, logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.dataPath, "data", "Crop_recommendation.csv", "labelled dataset (CSV with header)")
	f.StringVar(&opts.modelPath, "model", "model.gob", "output path of the classifier")
	f.StringVar(&opts.scalerPath, "scaler", "standscaler.gob", "output path of the feature scaler")
	f.StringVar(&opts.labelCol, "label", "label", "name of the label column")
	f.Float64Var(&opts.testSize, "test-size", 0.2, "fraction of rows held out for evaluation")
	f.IntVar(&opts.forest.NumTrees, "trees", opts.forest.NumTrees, "number of trees")
	f.IntVar(&opts.forest.MaxDepth, "max-depth", 0, "maximum tree depth (0 = unlimited)")
	f.IntVar(&opts.forest.MinSamplesSplit, "min-samples-split", opts.forest.MinSamplesSplit, "minimum samples required to split a node")
	f.Int64Var(&opts.forest.Seed, "seed", opts.forest.Seed, "random seed for the split and the forest")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level")
	return cmd
}

func runTrain(cmd *cobra.Command, opts trainOptions, logger *zap.Logger) error {
	data, err := ml.LoadCSVFile(opts.dataPath, models.FeatureNames, opts.labelCol, models.CropIndex)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("Dataset loaded", zap.String("path", opts.dataPath), zap.Int("rows", data.Len()))

	train, test, err := data.Split(opts.testSize, opts.forest.Seed)
	if err != nil {
		return err
	}

	scaler := &ml.StandardScaler{}
	if err := scaler.Fit(train.Features); err != nil {
		return err
	}
	trainScaled, err := scaler.TransformMatrix(train.Features)
	if err != nil {
		return err
	}
	testScaled, err := scaler.TransformMatrix(test.Features)
	if err != nil {
		return err
	}

	start := time.Now()
	forest := ml.NewRandomForest(opts.forest)
	if err := forest.Fit(cmd.Context(), trainScaled, train.Labels); err != nil {
		return fmt.Errorf("fit forest: %w", err)
	}
	accuracy, err := forest.Score(testScaled, test.Labels)
	if err != nil {
		return err
	}
	logger.Info("Model trained",
		zap.Int("trees", len(forest.Trees)),
		zap.Int("train_rows", train.Len()),
		zap.Int("test_rows", test.Len()),
		zap.Float64("accuracy", accuracy),
		zap.Duration("elapsed", time.Since(start)))

	if err := ml.SaveModel(opts.modelPath, forest); err != nil {
		return err
	}
	if err := ml.SaveScaler(opts.scalerPath, scaler); err != nil {
		return err
	}
	logger.Info("Model and scaler saved", zap.String("model", opts.modelPath), zap.String("scaler", opts.scalerPath))
	return nil
}
