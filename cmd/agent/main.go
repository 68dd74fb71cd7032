package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/qbitsinc/orderwise-printer/internal/application/printing"
	"github.com/qbitsinc/orderwise-printer/internal/domain/entity"
	"github.com/qbitsinc/orderwise-printer/internal/domain/ticket"
	"github.com/qbitsinc/orderwise-printer/internal/infrastructure/autostart"
	"github.com/qbitsinc/orderwise-printer/internal/infrastructure/backend"
	"github.com/qbitsinc/orderwise-printer/internal/infrastructure/discovery"
	"github.com/qbitsinc/orderwise-printer/internal/infrastructure/netprint"
	"github.com/qbitsinc/orderwise-printer/internal/infrastructure/pusher"
	infraqr "github.com/qbitsinc/orderwise-printer/internal/infrastructure/qr"
	"github.com/qbitsinc/orderwise-printer/internal/infrastructure/render"
	"github.com/qbitsinc/orderwise-printer/internal/infrastructure/spool"
	"github.com/qbitsinc/orderwise-printer/pkg/afip"
	"github.com/qbitsinc/orderwise-printer/pkg/config"
	"github.com/qbitsinc/orderwise-printer/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando agente de impresión")

	device, err := config.LoadDevice("config.json")
	if err != nil {
		log.Fatal().Err(err).Msg("identidad del dispositivo")
	}
	if err := afip.ValidateCUIT(device.CUIT); err != nil {
		// se sigue con el valor provisto: el backend lo rechaza si corresponde
		log.Warn().Err(err).Str("cuit", device.CUIT).Msg("CUIT con dígito verificador inválido")
	}
	log.Info().
		Str("cuit", device.CUIT).
		Str("device_id", device.DeviceID).
		Msg("dispositivo identificado")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printers := discoverPrinters(ctx, cfg, log)
	log.Info().Int("printers", len(printers)).Msg("descubrimiento completado")

	registrar := backend.NewRegistrar(cfg.Backend.RegisterURL, cfg.Backend.Timeout)
	if err := registrar.Register(ctx, device.CUIT, device.DeviceID, printers); err != nil {
		log.Warn().Err(err).Msg("registro del dispositivo en el backend")
	}

	if err := autostart.Install(cfg.App.Name); err != nil {
		log.Warn().Err(err).Msg("instalación del arranque automático")
	}

	formatter := ticket.NewFormatter(cfg.Printing.Width)
	encoder := infraqr.NewEncoder(cfg.Printing.QRSizePixels)
	router := printing.NewRouter(
		render.NewTextRenderer(),
		render.NewPageRenderer(cfg.Printing.QRSizePixels),
		netprint.NewSender(cfg.Printing.Port, cfg.Printing.ConnectTimeout),
		spool.NewLP(),
		cfg.Printing.DocName,
		log,
	)
	dispatcher := printing.NewDispatcher(
		cfg.Pusher.Channel,
		cfg.Pusher.EventName,
		device.CUIT,
		printers,
		formatter,
		encoder,
		router,
		log,
	)

	client := pusher.NewClient(cfg.Pusher.URL(), log)
	err = client.Run(ctx, func(ctx context.Context, raw []byte) {
		dispatcher.HandleMessage(ctx, client, raw)
	})
	if err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("conexión pub/sub")
	}
	log.Info().Msg("agente detenido")
}

// discoverPrinters releva impresoras de red en la subred local y colas de
// CUPS. Un fallo parcial no impide arrancar: el backend puede mandar el
// destino explícito en cada orden.
func discoverPrinters(ctx context.Context, cfg *config.Config, log *logger.Logger) []entity.Printer {
	var printers []entity.Printer

	if ip, err := discovery.LocalIP(); err != nil {
		log.Warn().Err(err).Msg("sin IP local, se omite el barrido de red")
	} else {
		found, err := discovery.ScanNetwork(ctx, ip, cfg.Printing.Port, cfg.Printing.ScanTimeout)
		if err != nil {
			log.Warn().Err(err).Msg("barrido de impresoras de red")
		}
		printers = append(printers, found...)
	}

	queues, err := discovery.LocalQueues(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("colas locales de impresión")
	}
	printers = append(printers, queues...)

	return printers
}
