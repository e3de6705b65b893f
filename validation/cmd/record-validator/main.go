package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cloudx-io/openbidding/bidapi"
	"github.com/cloudx-io/openbidding/validation"
)

func main() {
	// Define CLI flags
	var (
		recordInput     = flag.String("record", "", "Gzipped selection record, base64 (file path or inline string)")
		publicKeyInput  = flag.String("public-key", "", "Engine signing public key, PEM (file path or inline string)")
		participationID = flag.String("participation-id", "", "The validator's own participation ID")
		totalAmount     = flag.Float64("total-amount", 0, "The validator's own submitted total amount")
		isWinner        = flag.Bool("winner", false, "Whether the validator expects to have won")
		clearingTotal   = flag.Float64("clearing-total", -1, "Expected winning total (-1 = no winner expected)")
		outputFormat    = flag.String("format", "text", "Output format: text or json")
		help            = flag.Bool("help", false, "Show usage information")
	)

	flag.Parse()

	if *help {
		showUsage()
		os.Exit(0)
	}

	if *recordInput == "" || *publicKeyInput == "" || *participationID == "" {
		showUsage()
		fmt.Fprintf(os.Stderr, "\nError: --record, --public-key and --participation-id are required\n")
		os.Exit(1)
	}

	recordBase64, err := readInput(*recordInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading record: %v\n", err)
		os.Exit(2)
	}

	publicKeyPEM, err := readInput(*publicKeyInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading public key: %v\n", err)
		os.Exit(2)
	}

	recordGzip, err := bidapi.DecodeSelectionRecordGzipBase64(strings.TrimSpace(recordBase64))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding record: %v\n", err)
		os.Exit(2)
	}

	input := &validation.RecordValidationInput{
		RecordCOSEGzip:  recordGzip,
		PublicKeyPEM:    publicKeyPEM,
		ParticipationID: *participationID,
		TotalAmount:     *totalAmount,
		IsWinner:        *isWinner,
	}
	if *clearingTotal >= 0 {
		input.ClearingTotal = clearingTotal
	}

	result, err := validation.ValidateSelectionRecord(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
		os.Exit(2)
	}

	if *outputFormat == "json" {
		outputJSON(result)
	} else {
		outputText(result)
	}

	if !result.IsValid() {
		os.Exit(1)
	}
	os.Exit(0)
}

func showUsage() {
	fmt.Println("Selection Record Validator")
	fmt.Println()
	fmt.Println("Validates signed winner-selection records exported by the bidding engine.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  record-validator --record <base64> --public-key <pem> --participation-id <id> [options]")
	fmt.Println()
	fmt.Println("Required Flags:")
	fmt.Println("  --record <base64>            Gzipped selection record, base64-encoded")
	fmt.Println("  --public-key <pem>           Engine signing public key, PEM-encoded")
	fmt.Println("  --participation-id <id>      The validator's own participation ID")
	fmt.Println()
	fmt.Println("Optional Flags:")
	fmt.Println("  --total-amount <n>           The validator's own submitted total (for hash membership)")
	fmt.Println("  --winner                     Expect to have won the selection")
	fmt.Println("  --clearing-total <n>         Expected winning total (-1 = no winner expected)")
	fmt.Println("  --format <text|json>         Output format (default: text)")
	fmt.Println("  --help                       Show this help message")
	fmt.Println()
	fmt.Println("Input Format:")
	fmt.Println("  --record and --public-key accept either a file path or an inline string.")
}

// readInput reads a flag value that may be a file path or an inline string
func readInput(input string) (string, error) {
	if _, err := os.Stat(input); err == nil {
		data, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("read file %s: %w", input, err)
		}
		return string(data), nil
	}
	return input, nil
}

func outputJSON(result *validation.RecordValidationResult) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		os.Exit(2)
	}
	fmt.Println(string(data))
}

func outputText(result *validation.RecordValidationResult) {
	fmt.Println("Selection Record Validation Report")
	fmt.Println("==================================")
	fmt.Printf("Signature:          %s\n", passFail(result.SignatureValid))
	fmt.Printf("Participation hash: %s\n", passFail(result.ParticipationHashValid))
	fmt.Printf("Winner check:       %s\n", passFail(result.WinnerValid))
	fmt.Printf("Clearing total:     %s\n", passFail(result.ClearingTotalValid))
	fmt.Println()
	fmt.Printf("Overall: %s\n", passFail(result.IsValid()))
	fmt.Println()
	fmt.Println("Details:")
	for _, detail := range result.ValidationDetails {
		fmt.Printf("  - %s\n", detail)
	}
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
