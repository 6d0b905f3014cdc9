package main

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/hoisie/redis"

	"github.com/PauloMiraBarr/AED-SuffixTree/gst"
)

// SeedLoader grows one namespace's tree out-of-band: a local file and
// an optional Redis hash are scanned once a minute, same cadence as
// the teacher's Hosts.refresh, and every not-yet-seen line is handed
// to Tree.AddString. Unlike the teacher's hosts map (freely
// overwritten on every refresh), a GST string can't be un-added, so
// each source tracks what it has already inserted and only feeds new
// lines through.
type SeedLoader struct {
	namespace string
	tree      *gst.Tree
	fileSeed  *fileSeed
	redisSeed *redisSeed
	onAdd     func()
}

// NewSeedLoader starts loading ns's seed sources into tree. onAdd is
// called once for every string successfully added, out-of-band from
// the wire protocol's own add op — the caller uses it to keep its own
// bookkeeping (e.g. a cache-invalidating generation counter) in sync
// with tree mutations that didn't come through handler.go.
func NewSeedLoader(ns NamespaceSettings, rs RedisSettings, tree *gst.Tree, onAdd func()) *SeedLoader {
	var fs *fileSeed
	if ns.SeedFile != "" {
		fs = &fileSeed{file: ns.SeedFile, seen: make(map[string]bool)}
	}

	var rseed *redisSeed
	if ns.RedisSeed {
		rc := &redis.Client{Addr: rs.Addr(), Db: rs.DB, Password: rs.Password}
		rseed = &redisSeed{redis: rc, key: ns.RedisKey, seen: make(map[string]bool)}
	}

	sl := &SeedLoader{namespace: ns.Name, tree: tree, fileSeed: fs, redisSeed: rseed, onAdd: onAdd}
	sl.refresh()
	sl.loop()
	return sl
}

func (s *SeedLoader) loop() {
	ticker := time.NewTicker(time.Minute)
	go func() {
		for range ticker.C {
			s.refresh()
		}
	}()
}

func (s *SeedLoader) refresh() {
	var lines []string
	if s.fileSeed != nil {
		lines = append(lines, s.fileSeed.scan()...)
	}
	if s.redisSeed != nil {
		lines = append(lines, s.redisSeed.scan()...)
	}

	for _, line := range lines {
		if _, err := s.tree.AddString([]byte(line)); err != nil {
			logger.Warn("seed %s: add %q to namespace %s failed: %s", line, line, s.namespace, err)
			continue
		}
		if s.onAdd != nil {
			s.onAdd()
		}
	}
}

type fileSeed struct {
	file string
	seen map[string]bool
}

// scan returns every not-yet-seen, non-comment, non-blank line.
func (f *fileSeed) scan() []string {
	buf, err := os.Open(f.file)
	if err != nil {
		logger.Warn("seed load from file failed: %s", err)
		return nil
	}
	defer buf.Close()

	var fresh []string
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || f.seen[line] {
			continue
		}
		f.seen[line] = true
		fresh = append(fresh, line)
	}

	logger.Debug("seed scan from %s: %d new entries", f.file, len(fresh))
	return fresh
}

type redisSeed struct {
	redis *redis.Client
	key   string
	seen  map[string]bool
}

// scan reads every field of the configured hash and returns the
// values not yet seen.
func (r *redisSeed) scan() []string {
	values := make(map[string]string)
	if err := r.redis.Hgetall(r.key, values); err != nil {
		logger.Warn("seed load from redis failed: %s", err)
		return nil
	}

	var fresh []string
	for _, v := range values {
		if r.seen[v] {
			continue
		}
		r.seen[v] = true
		fresh = append(fresh, v)
	}

	logger.Debug("seed scan from redis key %s: %d new entries", r.key, len(fresh))
	return fresh
}
