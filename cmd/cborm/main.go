package main

import "fmt"
import "io"
import "os"

import s "github.com/bnclabs/gosettings"
import "github.com/fxamacker/cbor/v2"
import "github.com/prataprc/gson"
import "github.com/spf13/cobra"

import "github.com/mpetx/cbor-m"

var options struct {
	maxdepth uint64
	loglevel string
}

var rootCmd = &cobra.Command{
	Use:           "cborm",
	Short:         "inspect and verify CBOR buffers at the event level",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events <file>",
	Short: "dump the event stream of a CBOR file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		dec := cborm.NewDecoder(data, settings())
		depth := 0
		for {
			pos := dec.Pos()
			ev, err := dec.DecodeEvent()
			if err == io.EOF {
				return nil
			} else if err != nil {
				return fmt.Errorf("offset %v: %w", pos, err)
			}
			if ev.Kind == cborm.EventEnd {
				depth--
			}
			fmt.Printf("%8d  %*s%v\n", pos, 2*depth, "", ev)
			if ev.IsContainerOpen() {
				depth++
			}
		}
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "verify a CBOR file event-by-event, with independent referees",
	Long: `verify walks every top-level item in the file with the cborm
decoder, then cross-checks the buffer against two independent CBOR
implementations: fxamacker/cbor and gson.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		items, err := cborm.VerifyAll(data, settings())
		if err != nil {
			return fmt.Errorf("cborm: %w", err)
		}
		fmt.Printf("cborm: %v top-level item(s), %v bytes\n", items, len(data))

		if err := fxamackerCheck(data); err != nil {
			return fmt.Errorf("fxamacker/cbor: %w", err)
		}
		fmt.Println("fxamacker/cbor: ok")

		if err := gsonCheck(data); err != nil {
			return fmt.Errorf("gson: %w", err)
		}
		fmt.Println("gson: ok")
		return nil
	},
}

func settings() s.Settings {
	setts := cborm.DefaultSettings()
	setts["maxdepth"] = options.maxdepth
	return setts
}

// fxamackerCheck decodes every top-level item with fxamacker/cbor.
func fxamackerCheck(data []byte) error {
	for len(data) > 0 {
		var v interface{}
		rest, err := cbor.UnmarshalFirst(data, &v)
		if err != nil {
			return err
		}
		data = rest
	}
	return nil
}

// gsonCheck converts the first top-level item to a golang value with
// gson. gson signals malformed input by panicking, recover and report
// it as an error.
func gsonCheck(data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	config := gson.NewDefaultConfig()
	cbr := config.NewCbor(data)
	cbr.Tovalue()
	return nil
}

func main() {
	rootCmd.PersistentFlags().Uint64Var(&options.maxdepth, "maxdepth", 64,
		"maximum container nesting depth")
	rootCmd.PersistentFlags().StringVar(&options.loglevel, "log", "warn",
		"log level")
	rootCmd.AddCommand(eventsCmd, verifyCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
