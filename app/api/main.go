package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ipfsapi "github.com/ipfs/go-ipfs-api"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	bValidator "github.com/bidhaus/goapi/base/validator"
	"github.com/bidhaus/goapi/domain"
	mmiddleware "github.com/bidhaus/goapi/middleware"
	"github.com/bidhaus/goapi/service/chain"
	"github.com/bidhaus/goapi/service/chain/contract"
	auction_delivery "github.com/bidhaus/goapi/stores/auction/delivery/http"
	auction_usecase "github.com/bidhaus/goapi/stores/auction/usecase"
	metadata_repository "github.com/bidhaus/goapi/stores/metadata/repository"
	metadata_usecase "github.com/bidhaus/goapi/stores/metadata/usecase"
	wallet_delivery "github.com/bidhaus/goapi/stores/wallet/delivery/http"
	wallet_repository "github.com/bidhaus/goapi/stores/wallet/repository"
	wallet_usecase "github.com/bidhaus/goapi/stores/wallet/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	registries := make(map[domain.ChainId]domain.Address)
	tokens := make(map[domain.ChainId]domain.Address)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		registries[domain.ChainId(chainId)] = domain.Address(networks.GetString(fmt.Sprintf("%s.registry", k))).ToLower()
		tokens[domain.ChainId(chainId)] = domain.Address(networks.GetString(fmt.Sprintf("%s.bidToken", k))).ToLower()
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls: rpcs,
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	registryService := contract.NewRegistry(chainService, registries)
	auctionService := contract.NewAuction(chainService)
	erc20Service := contract.NewErc20(chainService)

	// init metadata readers
	httpTimeout := viper.GetDuration("http.timeout")
	httpReader := metadata_repository.NewHttpReaderRepo(http.Client{}, httpTimeout)
	var ipfsReader domain.MetadataReaderRepository
	if nodeApi := viper.GetString("ipfs.nodeApi"); nodeApi != "" {
		ipfsReader = metadata_repository.NewIpfsNodeApiReaderRepo(ipfsapi.NewShell(nodeApi), httpTimeout)
	} else {
		ipfsReader = metadata_repository.NewIpfsGatewayReaderRepo(http.Client{}, viper.GetString("ipfs.gateway"), httpTimeout)
	}

	// construct repository, usecase and delivery
	metadata := metadata_usecase.NewMetadataUseCase(&metadata_usecase.MetadataUseCaseCfg{
		HttpReader: httpReader,
		IpfsReader: ipfsReader,
	})
	auction := auction_usecase.NewAuctionUseCase(&auction_usecase.AuctionUseCaseCfg{
		Chain:    chainService,
		Registry: registryService,
		Contract: auctionService,
		Metadata: metadata,
	})
	balanceRepo := wallet_repository.NewBalanceRepo(&wallet_repository.BalanceRepoCfg{
		Chain:          chainService,
		Erc20:          erc20Service,
		RpcUrls:        rpcs,
		TokenAddresses: tokens,
	})
	wallet := wallet_usecase.NewWalletUseCase(&wallet_usecase.WalletUseCaseCfg{
		Balances: balanceRepo,
	})

	defaultChainId := domain.ChainId(viper.GetInt32("defaultChainId"))
	auction_delivery.New(e, auction, defaultChainId)
	wallet_delivery.New(e, wallet, defaultChainId)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status": "ok",
		})
	})

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
