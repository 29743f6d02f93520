package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ghostcoin/ghostdrop/internal/blockchain"
	"github.com/ghostcoin/ghostdrop/internal/config"
	"github.com/ghostcoin/ghostdrop/internal/ghostdrop"
	"github.com/ghostcoin/ghostdrop/internal/http_api"
	"github.com/ghostcoin/ghostdrop/internal/models"
	"github.com/ghostcoin/ghostdrop/internal/notificator"
	"github.com/ghostcoin/ghostdrop/internal/repository"
	"github.com/ghostcoin/ghostdrop/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "ghostdrop",
		Usage: "Ghostdrop is the backend for the Ghostcoin drop-claiming app",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "postgres-user", Aliases: []string{"u"}, Usage: "Postgres user"},
			&cli.StringFlag{Name: "postgres-password", Aliases: []string{"p"}, Usage: "Postgres password"},
			&cli.StringFlag{Name: "postgres-host", Aliases: []string{"t"}, Usage: "Postgres host"},
			&cli.IntFlag{Name: "postgres-port", Aliases: []string{"P"}, Usage: "Postgres port"},
			&cli.StringFlag{Name: "postgres-db", Aliases: []string{"d"}, Usage: "Postgres database name"},
			&cli.StringFlag{Name: "ethereum-rpc-url", Aliases: []string{"e"}, Usage: "Ethereum RPC endpoint URL"},
			&cli.StringFlag{Name: "token-contract-address", Aliases: []string{"s"}, Usage: "GHOX token contract address"},
			&cli.StringFlag{Name: "claim-policy", Aliases: []string{"c"}, Usage: "Claim winner policy (per_user or first_wins)"},
			&cli.Float64Flag{Name: "max-distance-miles", Aliases: []string{"m"}, Usage: "Maximum distance for drop discovery"},
			&cli.BoolFlag{Name: "development", Aliases: []string{"D"}, Usage: "Development mode"},
		},
		Action: func(c *cli.Context) error {
			return run(c)
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	// Load configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	// Override with flags if set
	if c.IsSet("postgres-user") {
		cfg.PostgresUser = c.String("postgres-user")
	}
	if c.IsSet("postgres-password") {
		cfg.PostgresPassword = c.String("postgres-password")
	}
	if c.IsSet("postgres-host") {
		cfg.PostgresHost = c.String("postgres-host")
	}
	if c.IsSet("postgres-port") {
		cfg.PostgresPort = c.Int("postgres-port")
	}
	if c.IsSet("postgres-db") {
		cfg.PostgresDB = c.String("postgres-db")
	}
	if c.IsSet("ethereum-rpc-url") {
		cfg.EthereumRPCURL = c.String("ethereum-rpc-url")
	}
	if c.IsSet("token-contract-address") {
		cfg.TokenContractAddress = c.String("token-contract-address")
	}
	if c.IsSet("claim-policy") {
		policy, err := models.ParseClaimPolicy(c.String("claim-policy"))
		if err != nil {
			return err
		}
		cfg.ClaimPolicy = policy
	}
	if c.IsSet("max-distance-miles") {
		cfg.MaxDistanceMiles = c.Float64("max-distance-miles")
	}
	if c.IsSet("development") {
		cfg.Development = c.Bool("development")
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}

	// Initialize database
	db, err := repository.NewPostgresDB(cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresHost, cfg.PostgresPort, cfg.ClaimPolicy, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Initialize the token balance oracle
	ethereum := blockchain.NewEthereum(cfg.EthereumRPCURL, cfg.TokenContractAddress, log)
	if err := ethereum.Run(); err != nil {
		return fmt.Errorf("failed to start blockchain oracle: %v", err)
	}

	var oracle models.TokenBalanceOracle = ethereum
	if cfg.RedisAddr != "" {
		cache, err := blockchain.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %v", err)
		}
		oracle = blockchain.NewCachedOracle(ethereum, cache, cfg.BalanceCacheTTL, log)
	}

	// Initialize notificators
	var telNotif *notificator.TelegramNotificator
	if cfg.TelegramBotToken != "" {
		telNotif, err = notificator.NewTelegramNotificator(log.Named("telegram"), cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			return fmt.Errorf("failed to start telegram notificator: %v", err)
		}
	}
	var emailNotif *notificator.EmailNotificator
	if cfg.SMTPUser != "" {
		emailNotif = notificator.NewEmailNotificator(log.Named("email"), cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPSender)
	}
	notif := notificator.NewNotificator(log, telNotif, emailNotif)

	// Create Ghostdrop instance
	ghostdropApp := ghostdrop.NewGhostdrop(db, oracle, notif, log, cfg)

	apiServer := http_api.NewHTTPServer(ghostdropApp, cfg.APIPort, cfg.JWTSecret, log)

	go apiServer.Start()
	// Start the application
	ghostdropApp.Start()

	return nil
}
