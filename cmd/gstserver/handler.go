package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/PauloMiraBarr/AED-SuffixTree/gst"
)

type gstNamespace struct {
	name    string
	tree    *gst.Tree
	seed    *SeedLoader
	version int
}

// GSTHandler dispatches decoded GST requests the same way the
// teacher's GODNSHandler dispatched DNS questions: resolve a target
// (there, an upstream nameserver; here, a namespace's tree), consult
// a cache before doing the real work, and always answer over DNS.
type GSTHandler struct {
	router     *namespaceRouter
	namespaces map[string]*gstNamespace
	cache      Cache
	audit      AuditLogger
}

func NewHandler() *GSTHandler {
	router := newNamespaceRouterRoot()
	namespaces := make(map[string]*gstNamespace)

	sentinel := byte(gst.DefaultSentinel)
	if settings.GST.Sentinel != "" {
		sentinel = settings.GST.Sentinel[0]
	}

	for _, nsCfg := range settings.GST.Namespaces {
		if !isValidNamespace(nsCfg.Name) {
			logger.Error("invalid namespace name %q, skipping", nsCfg.Name)
			continue
		}

		tree := gst.NewWithSentinel(sentinel)
		ns := &gstNamespace{name: nsCfg.Name, tree: tree}
		if nsCfg.SeedFile != "" || nsCfg.RedisSeed {
			ns.seed = NewSeedLoader(nsCfg, settings.Redis, tree, func() { ns.version++ })
		}
		namespaces[nsCfg.Name] = ns
		router.sinsert(strings.Split(nsCfg.Name, "."), nsCfg.Name)
	}

	var cache Cache
	switch settings.Cache.Backend {
	case "memory", "":
		cache = NewMemoryCache(secondsToDuration(settings.Cache.Expire), settings.Cache.Maxcount)
	case "memcache":
		cache = NewMemcachedCache([]string{settings.Redis.Addr()}, int32(settings.Cache.Expire))
	case "redis":
		cache = NewRedisCache(settings.Redis, int64(settings.Cache.Expire))
	default:
		logger.Error("invalid cache backend %s", settings.Cache.Backend)
		panic("invalid cache backend")
	}

	var audit AuditLogger
	if settings.Audit.Enable {
		switch settings.Audit.Backend {
		case "redis":
			audit = NewRedisAuditLogger(settings.Redis, settings.Audit.Expire)
		case "postgresql":
			audit = NewPostgresqlAuditLogger(settings.Postgresql, settings.Audit.Expire)
		default:
			logger.Warn("invalid audit backend %s, audit disabled", settings.Audit.Backend)
		}
	}

	return &GSTHandler{router: router, namespaces: namespaces, cache: cache, audit: audit}
}

func (h *GSTHandler) resolveNamespace(name string) *gstNamespace {
	labels := strings.Split(name, ".")
	canonical, found := h.router.search(labels)
	if !found {
		return nil
	}
	return h.namespaces[canonical]
}

func (h *GSTHandler) do(netw string, w dns.ResponseWriter, req *dns.Msg) {
	q := req.Question[0]

	result, ns, reqOp, payload := h.answer(q.Name)

	if h.audit != nil && ns != nil {
		h.audit.Write(NewAuditMessage(remoteAddrString(w), ns.name, reqOp, payload))
	}

	msg := new(dns.Msg)
	msg.SetReply(req)
	msg.Answer = append(msg.Answer, &dns.TXT{
		Hdr: dns.RR_Header{Name: q.Name, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 0},
		Txt: []string{result.marshal()},
	})
	w.WriteMsg(msg)
}

func (h *GSTHandler) DoTCP(w dns.ResponseWriter, req *dns.Msg) {
	h.do("tcp", w, req)
}

func (h *GSTHandler) DoUDP(w dns.ResponseWriter, req *dns.Msg) {
	h.do("udp", w, req)
}

// answer decodes and dispatches qname, returning the result alongside
// the namespace it hit (nil on decode/lookup failure), the op, and the
// decoded payload in string form for the audit call in do().
func (h *GSTHandler) answer(qname string) (queryResult, *gstNamespace, op, string) {
	req, err := decodeQueryName(qname)
	if err != nil {
		return queryResult{OK: false, Error: err.Error()}, nil, "", ""
	}
	payload := string(req.Payload)

	ns := h.resolveNamespace(req.Namespace)
	if ns == nil {
		return queryResult{OK: false, Error: "unknown namespace"}, nil, req.Op, payload
	}

	if req.Op == opAdd {
		return h.handleAdd(ns, req), ns, req.Op, payload
	}

	key := CacheKey(ns.name, ns.version, req.Op, req.Payload)
	if cached, err := h.cache.Get(key); err == nil {
		logger.Debug("%s %s hit cache", ns.name, req.Op)
		return cached, ns, req.Op, payload
	}

	result := h.handleRead(ns, req)
	if err := h.cache.Set(key, result); err != nil {
		logger.Debug("cache set failed for %s %s: %s", ns.name, req.Op, err)
	}
	return result, ns, req.Op, payload
}

// handleAdd mutates ns.tree and, on success, bumps ns.version so every
// sub/suf/enum result already cached for this namespace misses on its
// next lookup instead of serving a now-stale answer.
func (h *GSTHandler) handleAdd(ns *gstNamespace, req request) queryResult {
	id, err := ns.tree.AddString(req.Payload)
	if err != nil {
		return queryResult{OK: false, Error: err.Error()}
	}
	ns.version++
	return queryResult{OK: true, ID: id}
}

func (h *GSTHandler) handleRead(ns *gstNamespace, req request) queryResult {
	switch req.Op {
	case opSub:
		return queryResult{OK: true, Result: ns.tree.IsSubstring(req.Payload)}
	case opSuf:
		return queryResult{OK: true, Result: ns.tree.IsSuffix(req.Payload)}
	case opEnu:
		groups := ns.tree.EnumeratePaths(ns.tree.Root())
		out := make(map[string][]string, len(groups))
		for colors, labels := range groups {
			out[colorSetKey(colors)] = labels
		}
		return queryResult{OK: true, Groups: out}
	default:
		return queryResult{OK: false, Error: "unsupported op"}
	}
}

// colorSetKey renders a color bitmask as a stable, JSON-map-safe key:
// a comma-joined list of the string IDs it carries.
func colorSetKey(c gst.ColorSet) string {
	ids := c.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func remoteAddrString(w dns.ResponseWriter) string {
	if addr := w.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
