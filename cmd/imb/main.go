// Command imb is the CLI facade over the imb codec: it encodes postal
// records loaded from a YAML file into Intelligent Mail Barcode strings, or
// decodes barcode strings given on the command line back into records.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/erajkhatiwada/imb"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

func main() {
	recordsFile := pflag.StringP("records", "f", "", "YAML file of records to encode; when set, runs in encode mode")
	outFile := pflag.StringP("out", "o", "", "write results here instead of stdout")
	verbose := pflag.BoolP("verbose", "v", false, "log operational detail (files loaded, repairs applied)")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: imb [flags] <barcode-string...>\n\n")
		fmt.Fprintf(os.Stderr, "Encode postal records from a YAML file into Intelligent Mail Barcode\n")
		fmt.Fprintf(os.Stderr, "strings, or decode barcode strings given as arguments.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	out := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			logger.Fatal("open output file", "file", *outFile, "err", err)
		}
		defer f.Close()
		out = f
	}

	var exitCode int
	if *recordsFile != "" {
		exitCode = runEncode(*recordsFile, out)
	} else {
		if pflag.NArg() == 0 {
			pflag.Usage()
			os.Exit(1)
		}
		exitCode = runDecode(pflag.Args(), out)
	}
	os.Exit(exitCode)
}

// recordFile is the YAML shape accepted by --records: a top-level mapping
// whose "records" key holds a list of records, each with snake_case fields
// (barcode_id, service_type, ...) matching imb.Record's.
type recordFile struct {
	Records []struct {
		BarcodeID   string `yaml:"barcode_id"`
		ServiceType string `yaml:"service_type"`
		MailerID    string `yaml:"mailer_id"`
		SerialNum   string `yaml:"serial_num"`
		Zip         string `yaml:"zip"`
		Plus4       string `yaml:"plus4"`
		DeliveryPt  string `yaml:"delivery_pt"`
	} `yaml:"records"`
}

func loadRecords(path string) ([]imb.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var rf recordFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	records := make([]imb.Record, len(rf.Records))
	for i, e := range rf.Records {
		records[i] = imb.Record{
			BarcodeID:   e.BarcodeID,
			ServiceType: e.ServiceType,
			MailerID:    e.MailerID,
			SerialNum:   e.SerialNum,
			Zip:         e.Zip,
			Plus4:       e.Plus4,
			DeliveryPt:  e.DeliveryPt,
		}
	}
	return records, nil
}

func runEncode(path string, out *os.File) int {
	logger.Debug("loading records", "file", path)
	records, err := loadRecords(path)
	if err != nil {
		logger.Error("load records", "err", err)
		return 1
	}

	exitCode := 0
	for i, r := range records {
		s, err := imb.Encode(r)
		if err != nil {
			logger.Error("encode", "index", i, "err", err)
			exitCode = 1
			continue
		}
		fmt.Fprintln(out, s)
	}
	return exitCode
}

func runDecode(barcodes []string, out *os.File) int {
	exitCode := 0
	for _, s := range barcodes {
		result, err := imb.Decode(s)
		if err != nil {
			logger.Error("decode", "barcode", s, "err", err)
			exitCode = 1
			continue
		}
		if result.Repair.Repaired {
			logger.Info("recovered barcode with repair", "barcode", s, "suggest", result.Repair.Suggest)
		}
		fmt.Fprintf(out, "%+v\n", result.Record)
	}
	return exitCode
}
