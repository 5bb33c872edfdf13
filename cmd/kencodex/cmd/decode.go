package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/Eignex/kencodex"
	"github.com/Eignex/kencodex/base85"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode --schema <fields> <hex>",
	Short: "Decode a record into its fields",
	Long: `Decode reads one wire record given as hex (or Z85 with --z85) and prints
every schema field on its own line.

Examples:
  kencodex decode --schema 'id:int32@varuint,name:string,active:bool' 015405616c696365
  kencodex decode --schema 'a:byte,b:short' --z85 00963`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaSrc, _ := cmd.Flags().GetString("schema")
		asZ85, _ := cmd.Flags().GetBool("z85")

		s, err := parseSchema(schemaSrc)
		if err != nil {
			return err
		}
		var record []byte
		if asZ85 {
			record, err = base85.DecodeZ85(args[0])
		} else {
			record, err = hex.DecodeString(dropSpaces(args[0]))
		}
		if err != nil {
			return err
		}
		values, err := kencodex.Unmarshal(s, record)
		if err != nil {
			return err
		}
		for pos, v := range values {
			f := s.Field(pos)
			fmt.Printf("%s: %s\n", f.Name, formatValue(f, v))
		}
		return nil
	},
}

// dropSpaces strips whitespace so pasted hex dumps with byte separators
// still parse.
func dropSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().String("schema", "", "Field list, e.g. id:int32@varuint,name:string")
	decodeCmd.Flags().Bool("z85", false, "Read the record as Z85 text instead of hex")
	_ = decodeCmd.MarkFlagRequired("schema")
}
