package planetscale

import (
	"database/sql"

	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"

	"github.com/localboard/board-be/config"
	db2 "github.com/localboard/board-be/db"
)

type PlanetScaleDB struct {
	*ChatterDB
	*BroadcastDB
	*TradeDB
	*DropDB
	*UserDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *config.Config) (db2.Database, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}

	// TODO: Move pool sizing to config
	db.SetMaxIdleConns(50)
	db.SetMaxOpenConns(50)
	db.SetConnMaxIdleTime(0)

	sess, err := mysql.New(db)
	if err != nil {
		return nil, err
	}

	return &PlanetScaleDB{
		ChatterDB:   getChatterDB(sess),
		BroadcastDB: getBroadcastDB(sess),
		TradeDB:     getTradeDB(sess),
		DropDB:      getDropDB(sess),
		UserDB:      getUserDB(sess),
		sess:        sess,
		sqlDB:       db,
	}, nil
}

func (psdb *PlanetScaleDB) GetSQLDB() *sql.DB {
	return psdb.sqlDB
}

func (psdb *PlanetScaleDB) Close() error {
	return psdb.sess.Close()
}
