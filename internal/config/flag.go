package config

import (
	"flag"
)

const defaultDBDNS = ""

type Flags struct {
	opsAddress string

	dbDNS    string
	token    string
	logLevel string
}

func (flags *Flags) Init() {
	flag.StringVar(&flags.opsAddress, "a", ":8080", "Address and port to run ops server")

	flag.StringVar(&flags.dbDNS, "d", defaultDBDNS, "db dns")
	flag.StringVar(&flags.token, "t", "", "telegram bot token")
	flag.StringVar(&flags.logLevel, "l", "info", "log level")

	flag.Parse()
}
