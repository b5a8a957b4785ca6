package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"grvtbot/client"
	"grvtbot/config"
	"grvtbot/env"
	"grvtbot/logger"
	"grvtbot/signing"
)

const authorizationHorizon = 7 * 24 * time.Hour

func main() {
	log := logger.NewLogger()

	// Load .env file if it exists (optional)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config_load_failed", "err", err)
		os.Exit(1)
	}

	envName := flag.String("env", cfg.Environment, "environment: "+strings.Join(env.Names(), ", "))
	apiKey := flag.String("api-key", cfg.APIKey, "API key for session login")
	privateKey := flag.String("private-key", cfg.PrivateKey, "private key for order signing (hex)")
	orderFile := flag.String("order-file", cfg.OrderFile, "path to order data JSON file")
	updateExpiration := flag.Bool("update-expiration", false, "refresh order nonce and expiration before signing")
	expirationHours := flag.Int("expiration-hours", cfg.ExpirationHours, "hours until order expiration")

	authorize := flag.Bool("authorize", false, "run builder authorization to mint an API key")
	userPrivkey := flag.String("user-privkey", "", "user main account private key (for builder authorization)")
	mainAccountID := flag.String("main-account-id", "", "user main account address (0x...)")
	builderAccountID := flag.String("builder-account-id", "", "builder main account address (0x...)")
	builderSignerPrivkey := flag.String("builder-api-signer-privkey", "", "fresh signer privkey used by the builder on behalf of the user")
	permissions := flag.String("permissions", "Trade", "builder API key permissions")
	apiKeyLabel := flag.String("builder-api-key-label", "builder-bot", "label for the minted API key")
	maxFuturesFeeRate := flag.String("max-futures-fee-rate", "0.001", "max futures fee rate (decimal)")
	maxSpotFeeRate := flag.String("max-spot-fee-rate", "0.0001", "max spot fee rate (decimal)")

	stream := flag.Bool("stream", false, "stream market data for the order's instruments after submission")
	flag.Parse()

	environment, err := env.Lookup(*envName)
	if err != nil {
		log.Error("unknown_environment", "env", *envName, "err", err)
		os.Exit(1)
	}
	log.Info("environment_selected", "env", environment.Name, "chain_id", environment.ChainID)

	ctx := context.Background()
	edgeClient := client.NewEdgeClient(environment)

	key := *apiKey
	if *authorize {
		key, err = runAuthorize(ctx, edgeClient, environment, authorizeArgs{
			userPrivkey:          *userPrivkey,
			mainAccountID:        *mainAccountID,
			builderAccountID:     *builderAccountID,
			builderSignerPrivkey: *builderSignerPrivkey,
			permissions:          *permissions,
			apiKeyLabel:          *apiKeyLabel,
			maxFuturesFeeRate:    *maxFuturesFeeRate,
			maxSpotFeeRate:       *maxSpotFeeRate,
		}, log)
		if err != nil {
			log.Error("builder_authorization_failed", "err", err)
			os.Exit(1)
		}
		log.Info("api_key_minted", "label", *apiKeyLabel)
	}

	if key == "" {
		log.Error("missing_config", "msg", "provide -api-key or run with -authorize")
		os.Exit(1)
	}

	session, err := edgeClient.Login(ctx, key)
	if err != nil {
		log.Error("login_failed", "err", err)
		os.Exit(1)
	}
	log.Info("login_successful", "account_id", session.AccountID)

	tradeClient := client.NewTradeClient(environment, session)

	subAccounts, err := tradeClient.GetSubAccounts(ctx)
	if err != nil {
		log.Error("get_sub_accounts_failed", "err", err)
		os.Exit(1)
	}
	log.Info("sub_accounts", "result", string(subAccounts.Result))

	marketDataClient := client.NewMarketDataClient(environment)
	directory, err := marketDataClient.FetchInstruments(ctx)
	if err != nil {
		log.Error("fetch_instruments_failed", "err", err)
		os.Exit(1)
	}
	log.Info("instruments_fetched", "count", len(directory))

	if *privateKey == "" {
		log.Error("missing_config", "msg", "-private-key is required for order signing")
		os.Exit(1)
	}

	data, err := os.ReadFile(*orderFile)
	if err != nil {
		log.Error("order_file_read_failed", "file", *orderFile, "err", err)
		os.Exit(1)
	}

	order, err := client.ParseOrderDocument(data)
	if err != nil {
		log.Error("order_file_parse_failed", "file", *orderFile, "err", err)
		os.Exit(1)
	}

	if *updateExpiration {
		nonce, err := signing.NewNonce()
		if err != nil {
			log.Error("nonce_generation_failed", "err", err)
			os.Exit(1)
		}
		expiration, err := signing.ExpirationFromNow(time.Duration(*expirationHours) * time.Hour)
		if err != nil {
			log.Error("expiration_out_of_window", "err", err)
			os.Exit(1)
		}
		order.Signature.Nonce = nonce
		order.Signature.Expiration = expiration
		log.Info("signature_fields_refreshed", "expiration_hours", *expirationHours)
	}

	signingKey, err := signing.ParsePrivateKey(*privateKey)
	if err != nil {
		log.Error("invalid_private_key", "err", err)
		os.Exit(1)
	}

	signedOrder, err := signing.SignOrder(order, directory, signingKey, environment.ChainID)
	signingKey.Destroy()
	if err != nil {
		log.Error("order_signing_failed", "err", err)
		os.Exit(1)
	}
	log.Info("order_signed", "signer", signedOrder.Signature.Signer)

	result, err := tradeClient.CreateOrder(ctx, signedOrder)
	if err != nil {
		log.Error("order_submission_failed", "err", err)
		os.Exit(1)
	}

	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(pretty))
	log.Info("order_submitted")

	if *stream {
		if err := streamMarketData(environment, signedOrder, log); err != nil {
			log.Error("market_data_stream_failed", "err", err)
			os.Exit(1)
		}
	}
}

type authorizeArgs struct {
	userPrivkey          string
	mainAccountID        string
	builderAccountID     string
	builderSignerPrivkey string
	permissions          string
	apiKeyLabel          string
	maxFuturesFeeRate    string
	maxSpotFeeRate       string
}

func runAuthorize(ctx context.Context, edgeClient *client.EdgeClient, environment env.Environment, args authorizeArgs, log *logger.Logger) (string, error) {
	if args.userPrivkey == "" || args.mainAccountID == "" || args.builderAccountID == "" || args.builderSignerPrivkey == "" {
		return "", fmt.Errorf("authorize requires -user-privkey, -main-account-id, -builder-account-id and -builder-api-signer-privkey")
	}

	// The builder API signer is a fresh keypair generated for the user; only
	// its public address enters the payload and the request.
	builderSignerKey, err := signing.ParsePrivateKey(args.builderSignerPrivkey)
	if err != nil {
		return "", fmt.Errorf("builder signer key: %w", err)
	}
	signerAddress := builderSignerKey.Address().Hex()
	builderSignerKey.Destroy()

	nonce, err := signing.NewNonce()
	if err != nil {
		return "", err
	}
	expiration, err := signing.ExpirationFromNow(authorizationHorizon)
	if err != nil {
		return "", err
	}

	userKey, err := signing.ParsePrivateKey(args.userPrivkey)
	if err != nil {
		return "", fmt.Errorf("user key: %w", err)
	}
	defer userKey.Destroy()

	sig, err := signing.SignAuthorization(signing.AuthorizationInputs{
		MainAccountID:     args.mainAccountID,
		BuilderAccountID:  args.builderAccountID,
		SignerAddress:     signerAddress,
		Permissions:       args.permissions,
		MaxFuturesFeeRate: args.maxFuturesFeeRate,
		MaxSpotFeeRate:    args.maxSpotFeeRate,
		Nonce:             nonce,
		Expiration:        expiration,
		ChainID:           environment.ChainID,
	}, userKey)
	if err != nil {
		return "", err
	}
	log.Info("authorization_signed", "signer", sig.Signer)

	return edgeClient.AuthorizeBuilder(ctx, client.AuthorizeBuilderParams{
		MainAccountID:            args.mainAccountID,
		BuilderAccountID:         args.builderAccountID,
		MaxFuturesFeeRate:        args.maxFuturesFeeRate,
		MaxSpotFeeRate:           args.maxSpotFeeRate,
		BuilderAPIKeyLabel:       args.apiKeyLabel,
		BuilderAPIKeySigner:      signerAddress,
		BuilderAPIKeyPermissions: args.permissions,
	}, sig)
}

func streamMarketData(environment env.Environment, order signing.Order, log *logger.Logger) error {
	instruments := make([]string, 0, len(order.Legs))
	for _, leg := range order.Legs {
		instruments = append(instruments, leg.Instrument)
	}

	wsClient := client.NewWSMarketClient(environment, client.WSMarketCallbacks{
		OnMiniTicker: func(m client.MiniTickerMessage) {
			log.Info("mini_ticker", "instrument", m.Instrument, "mark_price", m.MarkPrice, "best_bid", m.BestBidPrice, "best_ask", m.BestAskPrice)
		},
		OnTrade: func(m client.TradeMessage) {
			log.Info("trade", "instrument", m.Instrument, "price", m.Price, "size", m.Size)
		},
	}, *log)

	if err := wsClient.Connect(); err != nil {
		return err
	}
	defer wsClient.Close()

	if err := wsClient.SubscribeMiniTicker(instruments); err != nil {
		return err
	}
	if err := wsClient.SubscribeTrades(instruments); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := wsClient.Listen(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
