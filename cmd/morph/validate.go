package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/morph/pkg/codec"
	"github.com/aretw0/morph/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a configuration document against a schema",
	Long: `Decodes the document and reports every field that is missing, undeclared
or of the wrong type according to the schema file.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args[0], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Document is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("schema", "", "Schema file (defaults to the settings schema)")
}

func runValidate(cmd *cobra.Command, path string, stdout io.Writer) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if settings.Schema == "" {
		return errors.New("no schema given: use --schema or set schema in the settings file")
	}

	s, err := loadSchema(settings.Schema)
	if err != nil {
		return err
	}

	doc, err := codec.LoadFile(path)
	if err != nil {
		return err
	}

	if err := schema.Validate(s, doc); err != nil {
		for _, fieldErr := range schema.ValidationErrors(err) {
			fmt.Fprintf(stdout, "  - %v\n", fieldErr)
		}
		return fmt.Errorf("%s does not match %s", path, settings.Schema)
	}
	return nil
}
