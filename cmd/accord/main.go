// Command accord drives the agreement engine from the command line.
//
// Subcommands:
//
//	accord generate [--template SN]     expand a template against a lexicon
//	accord decode                       constraint-filtered beam search
//	accord evaluate [sentence ...]      grammaticality report
//	accord verify "<sentence>"          single-sentence check, exit 0/1
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	accord "github.com/morphosyntaxe/accord"
)

var (
	flagConfig   string
	flagTool     string
	flagDictPath string
	flagVerbose  bool
)

func main() {
	root := &cobra.Command{
		Use:           "accord",
		Short:         "French morphosyntactic agreement: validate, generate, decode",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML configuration")
	root.PersistentFlags().StringVar(&flagTool, "tool", "", "analyzer tool: dict or http (overrides config)")
	root.PersistentFlags().StringVar(&flagDictPath, "dict-path", "", "directory holding morphalou.xml and lefff.txt")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newGenerateCmd(), newDecodeCmd(), newEvaluateCmd(), newVerifyCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	if flagVerbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			return log
		}
	}
	return zap.NewNop()
}

func loadConfig() (*accord.Config, error) {
	if flagConfig == "" {
		return accord.DefaultConfig(), nil
	}
	return accord.LoadConfig(flagConfig)
}

// buildAnalyzer wires the analyzer selected by flags/config. Failure here
// is a configuration error and aborts the whole command.
func buildAnalyzer(cfg *accord.Config) (accord.Analyzer, error) {
	tool := cfg.Analyzer.Tool
	if flagTool != "" {
		tool = flagTool
	}
	switch tool {
	case "", "dict":
		morphalou := cfg.Analyzer.MorphalouPath
		lefff := cfg.Analyzer.LefffPath
		if flagDictPath != "" {
			morphalou = filepath.Join(flagDictPath, "morphalou.xml")
			lefff = filepath.Join(flagDictPath, "lefff.txt")
		}
		if morphalou == "" && lefff == "" {
			return accord.NewDictAnalyzer(accord.BuiltinDictionary()), nil
		}
		dict := accord.NewDictionary()
		if morphalou != "" {
			if err := dict.LoadMorphalou(morphalou); err != nil {
				return nil, err
			}
		}
		if lefff != "" {
			if err := dict.LoadLefff(lefff); err != nil {
				return nil, err
			}
		}
		return accord.NewDictAnalyzer(dict), nil
	case "http":
		return accord.NewRemoteAnalyzer(cfg.Analyzer.BaseURL)
	default:
		return nil, fmt.Errorf("unknown analyzer tool %q", tool)
	}
}

func newGenerateCmd() *cobra.Command {
	var template string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate phrases from a template under agreement constraints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			analyzer, err := buildAnalyzer(cfg)
			if err != nil {
				return err
			}
			checker := accord.NewChecker(cfg.Checker.CheckerConfig())
			gen := accord.NewGenerator(analyzer, checker,
				accord.WithChunkSize(cfg.Generator.ChunkSize),
				accord.WithMaxRepetitions(cfg.Generator.MaxRepetitions),
				accord.WithGeneratorLogger(newLogger()))

			name := cfg.Generator.Template
			if template != "" {
				name = template
			}
			lexicon := cfg.Generator.Lexicon
			if len(lexicon) == 0 {
				lexicon = accord.BuiltinLexicon()
			}

			phrases, err := gen.Generate(name, lexicon)
			if err != nil {
				return err
			}
			fmt.Printf("%d phrases satisfy the %s template:\n", len(phrases), name)
			for i, p := range phrases {
				if i == 10 {
					fmt.Printf("  ... and %d more\n", len(phrases)-10)
					break
				}
				fmt.Printf("  - %s\n", p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&template, "template", "", "template name (SN, SV, SVO)")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode",
		Short: "Beam search over a scored vocabulary with agreement filtering",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			analyzer, err := buildAnalyzer(cfg)
			if err != nil {
				return err
			}
			checker := accord.NewChecker(cfg.Checker.CheckerConfig())
			dec := accord.NewDecoder(analyzer, checker,
				accord.WithDecoderLogger(newLogger()))

			vocab := cfg.Decoder.Vocabulary
			scores := cfg.Decoder.Scores
			if len(vocab) == 0 {
				vocab = []string{"Le", "La", "chat", "mange", "souris", "petite"}
				scores = make([]float64, len(vocab))
				for i := range scores {
					scores[i] = rand.Float64()
				}
			}
			beam, err := dec.Decode(accord.DecodeInput{
				Vocabulary: vocab,
				Scores:     scores,
				BeamWidth:  cfg.Decoder.BeamWidth,
				MaxLength:  cfg.Decoder.MaxLength,
			})
			if err != nil {
				return err
			}
			fmt.Println("Constrained decoding results:")
			for _, hyp := range beam {
				fmt.Printf("  - %s (score: %.3f)\n", hyp.Text(), hyp.Score)
			}
			return nil
		},
	}
}

func newEvaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate [sentence ...]",
		Short: "Report grammaticality over a set of sentences",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			analyzer, err := buildAnalyzer(cfg)
			if err != nil {
				return err
			}
			checker := accord.NewChecker(cfg.Checker.CheckerConfig())

			sentences := args
			if len(sentences) == 0 {
				sentences = []string{
					"Le petit chat noir",
					"La petite chat noir",
					"Les chats mangent",
					"Les chat mange",
				}
			}
			report, err := accord.NewEvaluator(analyzer, checker).Evaluate(sentences)
			if err != nil {
				return err
			}
			fmt.Printf("Grammaticality rate: %.2f%% (%d/%d)\n",
				report.Rate*100, report.Grammatical, report.Total)
			for rule, n := range report.Errors {
				fmt.Printf("  %s: %d\n", rule, n)
			}
			for _, res := range report.Results {
				mark := "ok"
				if !res.Grammatical {
					mark = string(res.FailedRule)
				}
				fmt.Printf("  - %-40s %s\n", res.Sentence, mark)
			}
			return nil
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <sentence>",
		Short: "Check one sentence; exit 0 when it passes, 1 otherwise",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			analyzer, err := buildAnalyzer(cfg)
			if err != nil {
				return err
			}
			checker := accord.NewChecker(accord.VerificationConfig())

			sentence := strings.TrimSpace(strings.Join(args, " "))
			ok, err := accord.VerifySentence(analyzer, checker, sentence)
			if err != nil {
				return err
			}
			if ok {
				fmt.Printf("✓ Correct — %s\n", sentence)
				return nil
			}
			fmt.Printf("✖ Incorrect — %s\n", sentence)
			os.Exit(1)
			return nil
		},
	}
}
