package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hoisie/redis"
	_ "github.com/lib/pq"
)

const auditLogOutputBuffer = 1024

type AuditLogger interface {
	Run()
	Write(mesg *AuditMesg)
}

// AuditMesg is one recorded GST operation: who asked, which namespace,
// what op, what payload, when.
type AuditMesg struct {
	RemoteAddr string    `json:"remoteaddr"`
	Namespace  string    `json:"namespace"`
	Op         string    `json:"op"`
	Payload    string    `json:"payload"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewAuditMessage(remoteAddr, namespace string, o op, payload string) *AuditMesg {
	return &AuditMesg{
		RemoteAddr: remoteAddr,
		Namespace:  namespace,
		Op:         string(o),
		Payload:    payload,
		Timestamp:  time.Now(),
	}
}

type RedisAuditLogger struct {
	backend *redis.Client
	mesgs   chan *AuditMesg
	expire  int64
}

func NewRedisAuditLogger(rs RedisSettings, expire int64) AuditLogger {
	rc := &redis.Client{Addr: rs.Addr(), Db: rs.DB, Password: rs.Password}
	al := &RedisAuditLogger{
		backend: rc,
		mesgs:   make(chan *AuditMesg, auditLogOutputBuffer),
		expire:  expire,
	}
	go al.Run()
	return al
}

func (rl *RedisAuditLogger) Run() {
	for mesg := range rl.mesgs {
		jsonMesg, err := json.Marshal(mesg)
		if err != nil {
			logger.Error("can't write to redis audit log: %v", err)
			continue
		}
		redisKey := fmt.Sprintf("audit-%s:00", mesg.Timestamp.Format("2006-01-02T15"))
		if err := rl.backend.Rpush(redisKey, jsonMesg); err != nil {
			logger.Error("can't write to redis audit log: %v", err)
			continue
		}
		if _, err := rl.backend.Expire(redisKey, rl.expire); err != nil {
			logger.Error("can't set expiration for redis audit log: %v", err)
		}
	}
}

func (rl *RedisAuditLogger) Write(mesg *AuditMesg) {
	rl.mesgs <- mesg
}

type PostgresqlAuditLogger struct {
	backend *sql.DB
	mesgs   chan *AuditMesg
	expire  int64
}

func NewPostgresqlAuditLogger(ps PostgresqlSettings, expire int64) AuditLogger {
	connStr := fmt.Sprintf(`
                host=%s port=%d
                user=%s password=%s
                dbname=%s sslmode=%s
                sslcert=%s sslkey=%s
                sslrootcert=%s
                `,
		ps.Host, ps.Port,
		ps.User, ps.Password,
		ps.DB, ps.Sslmode,
		ps.Sslcert, ps.Sslkey,
		ps.Sslrootcert,
	)
	pc, err := sql.Open("postgres", connStr)
	if err != nil {
		logger.Error("can't connect to audit log postgresql: %v", err)
	}
	rows, err := pc.Query(`
                CREATE TABLE IF NOT EXISTS gst_audit (
                        id BIGSERIAL NOT NULL,
                        remoteaddr TEXT,
                        namespace TEXT,
                        op TEXT,
                        payload TEXT,
                        timestamp TIMESTAMP
                )
        `)
	if rows != nil {
		rows.Close()
	}
	al := &PostgresqlAuditLogger{
		backend: pc,
		mesgs:   make(chan *AuditMesg, auditLogOutputBuffer),
		expire:  expire,
	}
	go al.Run()
	go al.Expire()
	return al
}

func (pl *PostgresqlAuditLogger) Run() {
	for mesg := range pl.mesgs {
		rows, err := pl.backend.Query(
			`INSERT INTO gst_audit (remoteaddr, namespace, op, payload, timestamp) VALUES ($1, $2, $3, $4, $5)`,
			mesg.RemoteAddr, mesg.Namespace, mesg.Op, mesg.Payload, mesg.Timestamp,
		)
		if err != nil {
			logger.Error("can't write to postgresql audit log: %v", err)
			continue
		}
		rows.Close()
	}
}

func (pl *PostgresqlAuditLogger) Write(mesg *AuditMesg) {
	pl.mesgs <- mesg
}

func (pl *PostgresqlAuditLogger) Expire() {
	for {
		expireTime := time.Now().Add(time.Duration(-pl.expire) * time.Second)
		rows, err := pl.backend.Query(`DELETE FROM gst_audit WHERE timestamp < $1`, expireTime)
		if err != nil {
			logger.Error("can't expire postgresql audit log: %v", err)
		} else {
			rows.Close()
		}
		time.Sleep(time.Duration(pl.expire) * time.Second / 2)
	}
}
