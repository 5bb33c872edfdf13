package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Eignex/kencodex/recordlog"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kencodex",
	Short: "Schema-driven flat record codec",
	Long: `kencodex encodes and decodes flat records against a declared schema,
with varint and zigzag integer packing and boolean flag compression.

Schemas are written as a comma-separated field list:

  id:int32@varuint,name:string,active:bool

Field kinds: bool byte short int32 int64 float32 float64 char string.
int32 and int64 fields accept @varint (raw varint) or @varuint (zigzag
varint); without an annotation they stay fixed-width big-endian. Field
positions follow declaration order.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			recordlog.SetLogger(l)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Log stream activity to stderr")
}
