package postgres

import (
	"context"
	"fmt"
	"net/url"

	"go-unique-sdk/internal/config"
	"go-unique-sdk/internal/messages"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

const (
	connQueryFormat = "sslmode=disable&pool_max_conns=%d"
	defaultConnPool = 4
)

type (
	PostgresClient struct {
		Pool *pgxpool.Pool
	}
)

// ConnString renders the pool connection string. The schema, when set, becomes the search path.
func ConnString(dbConfiguration config.PostgresConfig) string {
	connPool := dbConfiguration.ConnPool
	if connPool <= 0 {
		connPool = defaultConnPool
	}

	query := fmt.Sprintf(connQueryFormat, connPool)
	if dbConfiguration.Schema != "" {
		query += "&search_path=" + url.QueryEscape(dbConfiguration.Schema)
	}

	connURL := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(dbConfiguration.User, dbConfiguration.Password),
		Host:     dbConfiguration.Host + ":" + dbConfiguration.Port,
		Path:     "/" + dbConfiguration.Db,
		RawQuery: query,
	}
	return connURL.String()
}

// Connect creates a new Postgres connection pool client instance
func Connect(ctx context.Context, dbConfiguration config.PostgresConfig) (*PostgresClient, error) {
	messages.NewSDKMessage(
		messages.LOG_LEVEL_INFO,
		"",
		nil,
		messages.POSTGRES_CONNECTING,
		fmt.Sprintf("%s:%s/%s",
			dbConfiguration.Host,
			dbConfiguration.Port,
			dbConfiguration.Db,
		),
	).ConsoleLog()

	poolConfig, err := pgxpool.ParseConfig(ConnString(dbConfiguration))
	if err != nil {
		messages.NewSDKMessage(
			messages.LOG_LEVEL_ERROR,
			messages.GetComponent(Connect),
			err,
			messages.POSTGRES_FAILED_TO_PARSE_CONNECTION_STRING,
		).ConsoleLog()
		return nil, errors.Wrap(err, "parse postgres config")
	}

	poolConnection, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		messages.NewSDKMessage(
			messages.LOG_LEVEL_ERROR,
			messages.GetComponent(Connect),
			err,
			messages.POSTGRES_FAILED_TO_CONNECT,
		).ConsoleLog()
		return nil, errors.Wrap(err, "connect postgres")
	}

	err = poolConnection.Ping(ctx)
	if err != nil {
		messages.NewSDKMessage(
			messages.LOG_LEVEL_ERROR,
			messages.GetComponent(Connect),
			err,
			messages.POSTGRES_FAILED_TO_PING,
		).ConsoleLog()
		poolConnection.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}

	messages.NewSDKMessage(
		messages.LOG_LEVEL_SUCCESS,
		"",
		nil,
		messages.POSTGRES_CONNECTED,
	).ConsoleLog()
	return &PostgresClient{Pool: poolConnection}, nil
}

func (pc *PostgresClient) Close() {
	pc.Pool.Close()
}
