package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración inmutable del agente. Se construye una sola
// vez al arrancar y se pasa explícitamente a los componentes que la necesitan.
type Config struct {
	App      AppConfig
	Pusher   PusherConfig
	Backend  BackendConfig
	Printing PrintingConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// PusherConfig datos de conexión al canal pub/sub de órdenes.
type PusherConfig struct {
	AppKey    string
	Cluster   string
	Channel   string // canal fijo de comandas
	EventName string // prefijo del evento; el nombre completo es EventName_<cuit>
}

// hosts websocket por cluster de Pusher.
var pusherClusterHosts = map[string]string{
	"mt1": "ws.pusherapp.com",
	"us2": "ws-us2.pusher.com",
	"eu":  "ws-eu.pusher.com",
	"ap1": "ws-ap1.pusher.com",
}

// URL devuelve la URL websocket del cluster configurado.
func (c PusherConfig) URL() string {
	host, ok := pusherClusterHosts[c.Cluster]
	if !ok {
		host = "ws.pusherapp.com"
	}
	return fmt.Sprintf("wss://%s/app/%s?protocol=7&client=go&version=1.0", host, c.AppKey)
}

// BackendConfig API del backend para registrar el dispositivo.
type BackendConfig struct {
	RegisterURL string
	Timeout     time.Duration
}

// PrintingConfig parámetros de impresión y descubrimiento.
type PrintingConfig struct {
	Port           int           // puerto raw de impresoras de red
	ConnectTimeout time.Duration // timeout de conexión para el envío por red
	ScanTimeout    time.Duration // timeout de sondeo durante el descubrimiento
	Width          int           // columnas imprimibles del ticket de texto
	QRSizePixels   int           // lado del QR rasterizado
	DocName        string        // nombre del trabajo en la cola local
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo .env). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración .env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "orderwise-printer"),
		},
		Pusher: PusherConfig{
			AppKey:    getString(v, "PUSHER_APP_KEY", "30f8b5b5dfcc8631cb40"),
			Cluster:   getString(v, "PUSHER_CLUSTER", "us2"),
			Channel:   getString(v, "PUSHER_CHANNEL", "comandas"),
			EventName: getString(v, "PUSHER_EVENT", "NewOrderComanda"),
		},
		Backend: BackendConfig{
			RegisterURL: getString(v, "REGISTER_URL",
				"https://api-orderwise.qbitsinc.com/api/public/register-device"),
			Timeout: getDuration(v, "REGISTER_TIMEOUT", 10*time.Second),
		},
		Printing: PrintingConfig{
			Port:           getInt(v, "PRINTER_PORT", 9100),
			ConnectTimeout: getDuration(v, "PRINTER_CONNECT_TIMEOUT", 3*time.Second),
			ScanTimeout:    getDuration(v, "SCAN_TIMEOUT", 300*time.Millisecond),
			Width:          getInt(v, "TICKET_WIDTH", 32),
			QRSizePixels:   getInt(v, "QR_SIZE", 300),
			DocName:        getString(v, "PRINT_DOC_NAME", "Factura"),
		},
	}

	return cfg, nil
}

// Device identidad persistida del dispositivo (CUIT de la empresa + nombre de host).
type Device struct {
	CUIT     string `mapstructure:"cuit" json:"cuit"`
	DeviceID string `mapstructure:"device_id" json:"device_id"`
}

// LoadDevice carga la identidad del dispositivo desde path (config.json).
// En la primera ejecución toma el CUIT de la env var CUIT o del archivo
// cuit.txt, deriva el device id del hostname y persiste el resultado.
func LoadDevice(path string) (*Device, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err == nil {
		var d Device
		if err := v.Unmarshal(&d); err != nil {
			return nil, fmt.Errorf("config: leer %s: %w", path, err)
		}
		if d.CUIT != "" {
			return &d, nil
		}
	}

	cuit := strings.TrimSpace(os.Getenv("CUIT"))
	if cuit == "" {
		if raw, err := os.ReadFile("cuit.txt"); err == nil {
			cuit = strings.TrimSpace(string(raw))
		}
	}
	if cuit == "" {
		return nil, fmt.Errorf("config: falta el CUIT (defina la env var CUIT o el archivo cuit.txt)")
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	d := &Device{CUIT: cuit, DeviceID: host}

	v.Set("cuit", d.CUIT)
	v.Set("device_id", d.DeviceID)
	if err := v.WriteConfigAs(path); err != nil {
		return nil, fmt.Errorf("config: persistir %s: %w", path, err)
	}
	return d, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		if d := v.GetDuration(key); d > 0 {
			return d
		}
	}
	return def
}
