package config

import (
	"time"
)

type Data struct {
	Dir string `envconfig:"DIR" default:"data"`
}

type Rates struct {
	TTL          time.Duration `envconfig:"TTL" default:"300s"`
	BaseCurrency string        `envconfig:"BASE_CURRENCY" default:"USD"`
}

type CoinGecko struct {
	ApiUrl      string            `envconfig:"API_URL" default:"https://api.coingecko.com/api/v3/simple/price"`
	Currencies  []string          `envconfig:"CURRENCIES" default:"BTC,ETH,LTC,ADA"`
	IDMap       map[string]string `envconfig:"ID_MAP" default:"BTC:bitcoin,ETH:ethereum,LTC:litecoin,ADA:cardano"`
	HTTPTimeout time.Duration     `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type ExchangeRateApi struct {
	ApiKey      string        `envconfig:"API_KEY"`
	ApiUrl      string        `envconfig:"API_URL" default:"https://v6.exchangerate-api.com/v6"`
	Currencies  []string      `envconfig:"CURRENCIES" default:"EUR,GBP,JPY,CHF,CAD,AUD,RUB"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type Providers struct {
	CoinGecko    CoinGecko       `envconfig:"COINGECKO"`
	ExchangeRate ExchangeRateApi `envconfig:"EXCHANGERATE"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" default:"change-me"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[valutatrade]"`
}

type Server struct {
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            int           `envconfig:"PORT" default:"3000"`
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"20"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1s"`
}

type App struct {
	Env       string    `envconfig:"ENV" default:"development"`
	Data      Data      `envconfig:"DATA"`
	Rates     Rates     `envconfig:"RATES"`
	Providers Providers `envconfig:"PROVIDERS"`
	Jwt       Jwt       `envconfig:"JWT"`
	Log       Log       `envconfig:"LOG"`
	Server    Server    `envconfig:"SERVER"`
}
