// Package session provides multi-engine session state for HTTP request
// cycles: a lifecycle Coordinator, a pluggable storage Engine contract, an
// in-memory engine with a concurrent expiration sweeper and a Redis engine.
//
// # Architecture
//
// A Coordinator owns an ordered registry of named engines (always containing
// a "default" entry), a sid.Signer for tamper-evident identifiers and a
// Transport that moves tokens between client and server. Each request gets an
// ephemeral Group which lazily resolves the signed identifier and lazily
// loads one record per engine on first touch. That first-touch tracking, not
// eager enumeration, decides which engines receive the after and done events
// and which records are persisted.
//
//	┌────────┐  signed token  ┌───────────┐
//	│ Client │ ─────────────► │ Transport │
//	└────────┘                └───────────┘
//	      ▲                        │
//	      │                        ▼
//	┌──────────────────────────────────────┐
//	│             Coordinator              │
//	│  prepare → handler → after → done    │
//	└──────────────────────────────────────┘
//	      │ load / persist (accessed only)
//	      ▼
//	┌─────────┐ ┌─────────┐ ┌─────────┐
//	│ default │ │ "cart"  │ │ "flash" │  engines (memory, redis, …)
//	└─────────┘ └─────────┘ └─────────┘
//
// # Usage
//
//	coord, err := session.New(
//	    session.WithSecret("long-random-secret"),
//	    session.WithEngine("cart", session.NewRedisEngine(client)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	coord.Start(ctx)
//	defer coord.Stop(ctx)
//
//	mux.Handle("/", coord.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    g := session.MustFromContext(r.Context())
//	    rec, _ := g.Get(r.Context())
//	    rec.Set("views", 1)
//	})))
//
// A request whose handler never touches the group costs nothing: no token is
// resolved, no engine is loaded, no cookie decision is made.
//
// # Security
//
// A forged, expired or malformed token never fails a request. It is logged at
// warning level and the client transparently receives a fresh anonymous
// session. Engine failures during after or done are real errors and surface
// to the phase caller.
package session
