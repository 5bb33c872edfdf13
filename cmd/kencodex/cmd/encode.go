package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Eignex/kencodex/base85"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode --schema <fields> [values...]",
	Short: "Encode field values into a record",
	Long: `Encode packs one value per schema field into a wire record and prints it
as hex. Values arrive in field order; quote strings that carry spaces.

Examples:
  kencodex encode --schema 'id:int32@varuint,name:string,active:bool' 42 alice true
  kencodex encode --schema 'a:byte,b:short' 1 2 --z85`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaSrc, _ := cmd.Flags().GetString("schema")
		asZ85, _ := cmd.Flags().GetBool("z85")

		s, err := parseSchema(schemaSrc)
		if err != nil {
			return err
		}
		record, err := encodeRecord(s, args)
		if err != nil {
			return err
		}
		if asZ85 {
			text, err := base85.EncodeZ85(record)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		}
		fmt.Println(hex.EncodeToString(record))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().String("schema", "", "Field list, e.g. id:int32@varuint,name:string")
	encodeCmd.Flags().Bool("z85", false, "Print Z85 text instead of hex (record length must be a multiple of 4)")
	_ = encodeCmd.MarkFlagRequired("schema")
}
