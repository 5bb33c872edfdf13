package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Eignex/kencodex/base85"
)

// z85Cmd represents the z85 command group
var z85Cmd = &cobra.Command{
	Use:   "z85",
	Short: "Z85 text codec",
	Long: `Z85 converts between binary data and the ZeroMQ base-85 text form.
Binary input must be a multiple of 4 bytes; the text form is a multiple
of 5 characters.`,
}

var z85EncodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode binary data as Z85 text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args)
		if err != nil {
			return err
		}
		text, err := base85.EncodeZ85(data)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

var z85DecodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode Z85 text to binary data",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args)
		if err != nil {
			return err
		}
		raw, err := base85.DecodeZ85(strings.TrimSpace(string(data)))
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(raw)
		return err
	},
}

// readInput returns the named file's contents, or everything on stdin when
// no file is given.
func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func init() {
	rootCmd.AddCommand(z85Cmd)
	z85Cmd.AddCommand(z85EncodeCmd)
	z85Cmd.AddCommand(z85DecodeCmd)
}
