package args

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// parseAddress parses a 32-bit address given as hex (with or without a
// 0x prefix).
func parseAddress(s string) (uint32, error) {
	value, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("failed to parse address %q: use hex, e.g. '0x08000000'", s)
	}
	return uint32(value), nil
}

// Args represents the main command line arguments
type Args struct {
	DB      string     `json:"db"`
	Profile string     `json:"profile"`
	SubCmd  SubCommand `json:"subcmd"`
}

// SubCommand represents the subcommands available
type SubCommand struct {
	Name        string       `json:"name"`
	InspectArgs *InspectArgs `json:"inspect_args,omitempty"`
	SliceArgs   *SliceArgs   `json:"slice_args,omitempty"`
	FlattenArgs *FlattenArgs `json:"flatten_args,omitempty"`
	RecordArgs  *RecordArgs  `json:"record_args,omitempty"`
	DropArgs    *DropArgs    `json:"drop_args,omitempty"`
	PublishArgs *PublishArgs `json:"publish_args,omitempty"`
}

// InspectArgs represents arguments for the inspect and segments
// subcommands
type InspectArgs struct {
	Input string `json:"input"`
}

// SliceArgs represents arguments for the slice subcommand
type SliceArgs struct {
	Input string `json:"input"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// FlattenArgs represents arguments for the flatten subcommand
type FlattenArgs struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Start  uint32 `json:"start"`
	Size   uint32 `json:"size"`
}

// RecordArgs represents arguments for the record subcommand
type RecordArgs struct {
	Name  string `json:"name"`
	Input string `json:"input"`
}

// DropArgs represents arguments for the drop subcommand
type DropArgs struct {
	Name string `json:"name"`
}

// PublishArgs represents arguments for the publish subcommand
type PublishArgs struct {
	Name     string `json:"name"`
	Input    string `json:"input"`
	Bucket   string `json:"bucket"`
	Endpoint string `json:"endpoint"`
	Region   string `json:"region"`
}

// Global variables to store parsed arguments
var (
	globalArgs Args
	rootCmd    *cobra.Command
)

// createRootCmd creates the root command
func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hexmap",
		Short: "Decode, segment and slice Intel HEX firmware images",
		Long: "Decode Intel HEX firmware images into address-indexed views, " +
			"query them by address range, flatten them to binary, and keep a " +
			"catalog of decoded images.",
	}

	// Add global flags
	cmd.PersistentFlags().StringVar(&globalArgs.DB, "db", "",
		"Catalog DB connection url (sqlite: or postgres://). Can also be provided by a DATABASE_URL env var, but only if this arg is not provided.")
	cmd.PersistentFlags().StringVar(&globalArgs.Profile, "profile", "",
		"Path to a decode profile file (YAML or JSON). Defaults to the permissive profile.")

	return cmd
}

// createInspectCmd creates the inspect subcommand
func createInspectCmd() *cobra.Command {
	inspectArgs := &InspectArgs{}

	cmd := &cobra.Command{
		Use:   "inspect [input]",
		Short: "Decode an image and report its structure",
		Long: `Decode an Intel HEX image and report record and segment statistics.
Read from stdin by not providing any file path.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				inspectArgs.Input = args[0]
			}
			globalArgs.SubCmd = SubCommand{
				Name:        "inspect",
				InspectArgs: inspectArgs,
			}
		},
	}

	return cmd
}

// createSegmentsCmd creates the segments subcommand
func createSegmentsCmd() *cobra.Command {
	inspectArgs := &InspectArgs{}

	cmd := &cobra.Command{
		Use:   "segments [input]",
		Short: "List the segments of an image",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				inspectArgs.Input = args[0]
			}
			globalArgs.SubCmd = SubCommand{
				Name:        "segments",
				InspectArgs: inspectArgs,
			}
		},
	}

	return cmd
}

// createSliceCmd creates the slice subcommand
func createSliceCmd() *cobra.Command {
	sliceArgs := &SliceArgs{}

	cmd := &cobra.Command{
		Use:   "slice [input]",
		Short: "Query an inclusive absolute address range",
		Long: `Query the data records of an image whose absolute address lies in the
inclusive range [--start, --end], printed as JSON.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				sliceArgs.Input = args[0]
			}
			globalArgs.SubCmd = SubCommand{
				Name:      "slice",
				SliceArgs: sliceArgs,
			}
		},
	}

	var startStr, endStr string
	cmd.Flags().StringVar(&startStr, "start", "0x00000000", "Inclusive start address (hex).")
	cmd.Flags().StringVar(&endStr, "end", "0xFFFFFFFF", "Inclusive end address (hex).")

	// Parse addresses in PreRun
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		start, err := parseAddress(startStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start: %v\n", err)
			os.Exit(1)
		}
		end, err := parseAddress(endStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end: %v\n", err)
			os.Exit(1)
		}
		sliceArgs.Start = start
		sliceArgs.End = end
	}

	return cmd
}

// createFlattenCmd creates the flatten subcommand
func createFlattenCmd() *cobra.Command {
	flattenArgs := &FlattenArgs{}

	cmd := &cobra.Command{
		Use:   "flatten [input] [output]",
		Short: "Render an address window to a padded binary file",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			flattenArgs.Input = args[0]
			flattenArgs.Output = args[1]
			globalArgs.SubCmd = SubCommand{
				Name:        "flatten",
				FlattenArgs: flattenArgs,
			}
		},
	}

	var startStr, sizeStr string
	cmd.Flags().StringVar(&startStr, "start", "0x00000000", "Absolute start address of the window (hex).")
	cmd.Flags().StringVar(&sizeStr, "size", "", "Window size in bytes (hex). Defaults to the span of the image.")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		start, err := parseAddress(startStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start: %v\n", err)
			os.Exit(1)
		}
		flattenArgs.Start = start

		if sizeStr != "" {
			size, err := parseAddress(sizeStr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing size: %v\n", err)
				os.Exit(1)
			}
			flattenArgs.Size = size
		}
	}

	return cmd
}

// createRecordCmd creates the record subcommand
func createRecordCmd() *cobra.Command {
	recordArgs := &RecordArgs{}

	cmd := &cobra.Command{
		Use:   "record [name] [input]",
		Short: "Decode an image and record it in the catalog",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			recordArgs.Name = args[0]
			recordArgs.Input = args[1]
			globalArgs.SubCmd = SubCommand{
				Name:       "record",
				RecordArgs: recordArgs,
			}
		},
	}

	return cmd
}

// createListCmd creates the list subcommand
func createListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged images",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			globalArgs.SubCmd = SubCommand{Name: "list"}
		},
	}

	return cmd
}

// createDropCmd creates the drop subcommand
func createDropCmd() *cobra.Command {
	dropArgs := &DropArgs{}

	cmd := &cobra.Command{
		Use:   "drop [name]",
		Short: "Remove an image from the catalog",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dropArgs.Name = args[0]
			globalArgs.SubCmd = SubCommand{
				Name:     "drop",
				DropArgs: dropArgs,
			}
		},
	}

	return cmd
}

// createPublishCmd creates the publish subcommand
func createPublishCmd() *cobra.Command {
	publishArgs := &PublishArgs{}

	cmd := &cobra.Command{
		Use:   "publish [name] [input]",
		Short: "Validate an image and upload it to object storage",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			publishArgs.Name = args[0]
			publishArgs.Input = args[1]
			globalArgs.SubCmd = SubCommand{
				Name:        "publish",
				PublishArgs: publishArgs,
			}
		},
	}

	cmd.Flags().StringVarP(&publishArgs.Bucket, "bucket", "b", "firmware",
		"Object storage bucket to upload into.")
	cmd.Flags().StringVar(&publishArgs.Endpoint, "endpoint", "",
		"Object storage endpoint url. Can also be provided by an S3_ENDPOINT env var.")
	cmd.Flags().StringVar(&publishArgs.Region, "region", "us-east-1",
		"Object storage region.")

	return cmd
}

// ParseArgs parses command line arguments and returns Args struct
func ParseArgs() (*Args, error) {
	// Initialize global args
	globalArgs = Args{}

	// Create root command
	rootCmd = createRootCmd()

	// Add subcommands
	rootCmd.AddCommand(createInspectCmd())
	rootCmd.AddCommand(createSegmentsCmd())
	rootCmd.AddCommand(createSliceCmd())
	rootCmd.AddCommand(createFlattenCmd())
	rootCmd.AddCommand(createRecordCmd())
	rootCmd.AddCommand(createListCmd())
	rootCmd.AddCommand(createDropCmd())
	rootCmd.AddCommand(createPublishCmd())

	// Execute command parsing
	if err := rootCmd.Execute(); err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return &globalArgs, nil
}
