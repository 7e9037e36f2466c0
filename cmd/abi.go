package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	config "github.com/thirdweb-dev/walletbridge/configs"
	"github.com/thirdweb-dev/walletbridge/internal/abi"
	"github.com/thirdweb-dev/walletbridge/internal/common"
	"github.com/thirdweb-dev/walletbridge/internal/contract"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
)

var (
	abiCmd = &cobra.Command{
		Use:   "abi",
		Short: "Inspect contract ABIs",
	}

	abiSignatureCmd = &cobra.Command{
		Use:   "signature <signature>",
		Short: "Parse a function signature such as 'transfer(address to, uint128 amount)'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			function, err := abi.ParseFunctionSignature(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, function)
		},
	}

	abiValidateCmd = &cobra.Command{
		Use:   "validate <file>",
		Short: "Check every param type of an ABI file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contractAbi, err := loadAbiFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d functions, %d events\n", len(contractAbi.Functions), len(contractAbi.Events))
			return nil
		},
	}

	abiCallCmd = &cobra.Command{
		Use:   "call <file> <address> <method> [inputs]",
		Short: "Run a getter locally through the provider and print its outputs",
		Long:  "Loads the ABI file, encodes the optional JSON object of inputs, runs the method locally on the contract at address and prints the decoded outputs as JSON.",
		Args:  cobra.RangeArgs(3, 4),
		RunE:  runAbiCall,
	}
)

func init() {
	abiCmd.AddCommand(abiSignatureCmd)
	abiCmd.AddCommand(abiValidateCmd)
	abiCmd.AddCommand(abiCallCmd)
}

func runAbiCall(cmd *cobra.Command, args []string) error {
	contractAbi, err := loadAbiFile(args[0])
	if err != nil {
		return err
	}
	method := args[2]
	function, ok := contractAbi.Function(method)
	if !ok {
		return fmt.Errorf("%w '%s'", contract.ErrUnknownFunction, method)
	}

	var inputs abi.Tuple
	if len(args) == 4 {
		inputs, err = abi.ParseJSON(function.Inputs, []byte(args[3]))
		if err != nil {
			return fmt.Errorf("invalid inputs: %w", err)
		}
	}

	ctx := cmd.Context()
	pc := provider.ConnectRemote(
		ctx,
		config.Cfg.Provider.URL,
		provider.RemoteOptions{HandshakeTimeout: time.Duration(config.Cfg.Provider.HandshakeTimeout) * time.Millisecond},
		time.Duration(config.Cfg.Provider.ReadyTimeout)*time.Millisecond,
	)
	defer pc.Close()

	c := contract.New(provider.NewApi(pc), contractAbi, common.NewAddress(args[1]))
	outputs, err := c.Call(ctx, method, inputs)
	if err != nil {
		return err
	}
	return printJSON(cmd, abi.SerializeTokens(outputs))
}

func loadAbiFile(path string) (*abi.ContractAbi, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read abi file: %w", err)
	}
	return abi.LoadContractAbi(data)
}

func printJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
