package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"storefront/internal/infrastructure/payment"
)

func signCmd() *cobra.Command {
	var merchantID, secretKey string

	cmd := &cobra.Command{
		Use:   "sign <amount> <order-id>",
		Short: "Print the webhook signature for an order",
		Long: `Print the md5 signature a redirect-provider notification must carry.

Examples:
  storefront sign 20 frot_0f4c2a9e3d1b4c6f8a7e5d3c1b2a4f6e
  storefront sign --merchant 123 --secret abc 10 frot_...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if merchantID == "" {
				merchantID = os.Getenv("ENOT_SHOP_ID")
			}
			if secretKey == "" {
				secretKey = os.Getenv("ENOT_SECRET_KEY")
			}
			if strings.TrimSpace(merchantID) == "" || strings.TrimSpace(secretKey) == "" {
				return errors.New("merchant id and secret key are required (flags or ENOT_SHOP_ID/ENOT_SECRET_KEY)")
			}

			signer := payment.MD5Signer{SecretKey: strings.TrimSpace(secretKey)}
			fmt.Fprintln(cmd.OutOrStdout(), signer.Sign(strings.TrimSpace(merchantID), args[0], args[1]))
			return nil
		},
	}
	cmd.Flags().StringVar(&merchantID, "merchant", "", "merchant (shop) id, defaults to ENOT_SHOP_ID")
	cmd.Flags().StringVar(&secretKey, "secret", "", "secret key, defaults to ENOT_SECRET_KEY")
	return cmd
}
