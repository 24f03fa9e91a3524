// cobuild-digest CLI - Typed message signing digest calculator
//
// This CLI demonstrates the library's digest pipeline over transaction
// fixtures in the node RPC's JSON format.
//
// Example usage:
//   # Compute the digest the first script group signs
//   cobuild-digest digest tx.json
//
//   # The group owning witnesses 1 and 2
//   cobuild-digest digest tx.json 1,2
//
//   # Classify every witness slot
//   cobuild-digest inspect tx.json
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/api"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "digest":
		cmdDigest()
	case "inspect":
		cmdInspect()
	case "version":
		cmdVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cobuild-digest - Typed message signing digest calculator

Usage:
  cobuild-digest <command> [options]

Commands:
  digest <tx.json> [group]     Compute the signing digest for one script group
  inspect <tx.json>            Classify every witness slot of a transaction
  version                      Show version information
  help                         Show this help message

The transaction file uses the node RPC's JSON conventions ("0x..." strings
for bytes and integers). group lists the global witness indices of the
group's inputs, comma separated, ascending; it defaults to 0.

Examples:
  # Single-group transaction
  cobuild-digest digest tx.json

  # The group owning witnesses 1 and 2
  cobuild-digest digest tx.json 1,2`)
}

func cmdVersion() {
	fmt.Println("cobuild-digest v0.1.0")
	fmt.Println("Signing digest library for transactions carrying typed messages")
	fmt.Println("Based on the CKB cobuild typed message proposal")
}

func cmdDigest() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: transaction file required")
		fmt.Fprintln(os.Stderr, "Usage: cobuild-digest digest <tx.json> [group]")
		os.Exit(1)
	}

	tx, err := loadTransaction(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load transaction: %v\n", err)
		os.Exit(1)
	}

	group := []int{0}
	if len(os.Args) > 3 {
		group, err = parseGroup(os.Args[3])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad group %q: %v\n", os.Args[3], err)
			os.Exit(1)
		}
	}

	digest, lock, err := api.SigningDigest(tx, group)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to compute digest: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Signing digest: 0x%x\n", digest)
	fmt.Printf("Lock slot:      %d bytes\n", len(lock))
	if len(lock) > 0 {
		fmt.Printf("Lock bytes:     0x%x\n", lock)
	}
}

func cmdInspect() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: transaction file required")
		fmt.Fprintln(os.Stderr, "Usage: cobuild-digest inspect <tx.json>")
		os.Exit(1)
	}

	tx, err := loadTransaction(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load transaction: %v\n", err)
		os.Exit(1)
	}

	infos := api.InspectWitnesses(tx)
	fmt.Printf("Transaction: %d inputs, %d outputs, %d witnesses\n", len(tx.Inputs), len(tx.Outputs), len(infos))
	fmt.Printf("Hash: 0x%x\n\n", tx.Hash())

	for _, info := range infos {
		slot := "input"
		if info.Surplus {
			slot = "surplus, covered by the digest"
		}
		fmt.Printf("Witness %d (%d bytes, %s): %s\n", info.Index, info.Size, slot, info.Kind)
		if info.Lock >= 0 {
			fmt.Printf("  Lock:    %d bytes\n", info.Lock)
		}
		if info.Kind == "sighash_with_action" {
			fmt.Printf("  Actions: %d\n", info.Actions)
		}
	}

	for i, out := range tx.Outputs {
		fmt.Printf("Output %d lock: 0x%x\n", i, out.Lock.Hash())
	}
}

func parseGroup(s string) ([]int, error) {
	var group []int
	last := -1
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if n <= last {
			return nil, fmt.Errorf("indices must be ascending, got %d after %d", n, last)
		}
		last = n
		group = append(group, n)
	}
	return group, nil
}
