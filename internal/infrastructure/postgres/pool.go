package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-ai/pkg/config"
)

var errNoIPv4 = errors.New("sin dirección IPv4")

// NewPool crea el pool de conexiones, registra el codec NUMERIC ↔ decimal y verifica con PING.
// Con ForceIPv4 el host (de DATABASE_URL o DB_HOST) se resuelve a IPv4 antes de conectar.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	r := ipv4Resolver{fallbackDNS: cfg.FallbackDNS}

	dsn := cfg.ConnectionString()
	if cfg.ForceIPv4 {
		dsn = r.rewriteDSN(ctx, cfg)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if cfg.ForceIPv4 {
		poolConfig.ConnConfig.DialFunc = r.dial
	}

	poolConfig.MaxConns = int32(max(cfg.MaxConns, 1))
	poolConfig.MinConns = int32(min(max(cfg.MinConns, 0), cfg.MaxConns))
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// unit_cost NUMERIC -> shopspring/decimal en todas las conexiones del pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// ipv4Resolver resuelve hosts a IPv4: primero con el resolver del sistema y, si no hay registro A,
// con fallbackDNS.
type ipv4Resolver struct {
	fallbackDNS string
	lookup      func(ctx context.Context, r *net.Resolver, host string) ([]net.IP, error)
}

func (r ipv4Resolver) resolve(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", errNoIPv4
	}
	if ip, err := r.first(ctx, net.DefaultResolver, host); err == nil {
		return ip, nil
	}
	if r.fallbackDNS == "" {
		return "", errNoIPv4
	}
	fallback := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "udp", r.fallbackDNS)
		},
	}
	return r.first(ctx, fallback, host)
}

func (r ipv4Resolver) first(ctx context.Context, res *net.Resolver, host string) (string, error) {
	lookup := r.lookup
	if lookup == nil {
		lookup = func(ctx context.Context, res *net.Resolver, host string) ([]net.IP, error) {
			return res.LookupIP(ctx, "ip4", host)
		}
	}
	ips, err := lookup(ctx, res, host)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), nil
		}
	}
	return "", errNoIPv4
}

// dial fuerza tcp4; si el host no tiene IPv4 deja que el dialer decida.
func (r ipv4Resolver) dial(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ipv4, err := r.resolve(ctx, host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

// rewriteDSN cambia el host del DSN por su IPv4. Si no se puede resolver devuelve el DSN original.
func (r ipv4Resolver) rewriteDSN(ctx context.Context, cfg config.DBConfig) string {
	if cfg.DatabaseURL == "" {
		if ipv4, err := r.resolve(ctx, cfg.Host); err == nil {
			cfg.Host = ipv4
		}
		return cfg.DSN()
	}
	u, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		return cfg.DatabaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ipv4, err := r.resolve(ctx, u.Hostname())
	if err != nil {
		return cfg.DatabaseURL
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}
