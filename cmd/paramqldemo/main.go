/*******************************************************************************
* Copyright (C) 2026 the paramql Authors
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

// Package main runs a small HTTP server that compiles incoming query
// strings against a "users" entity. paramql itself stops at SQL text plus
// bound arguments; executing that statement is the caller's business, so
// this demo plays the caller: when a postgres DSN is configured it hands
// the compiled statement straight to database/sql, otherwise it just
// returns the compiled SQL and args as JSON.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/fraunhofer-iese/paramql"
	"github.com/fraunhofer-iese/paramql/internal/democonfig"
)

// usersEntity declares the root table and the associations paramqldemo is
// willing to join against, independent of which of those the config's
// whitelist actually permits for a given request.
func usersEntity() paramql.Entity {
	return paramql.NewEntity("users",
		paramql.Association{
			Name:  "current_version",
			Table: "current_version",
			On:    "%[1]s.user_id = users.id",
		},
		paramql.Association{
			Name:  "org",
			Table: "organizations",
			On:    "%[1]s.id = users.org_id",
		},
	)
}

// mapperSpec decodes the opaque "org_id" parameter (a UUID string) before
// it reaches the compiler, demonstrating the MapSafe stage of the
// pipeline. Any other field passes through untouched.
func mapperSpec() *paramql.Spec {
	return paramql.NewMapperSpec().Field("org_id", func(v interface{}) (interface{}, error) {
		s, _ := v.(string)
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		return id.String(), nil
	})
}

// queryHandler owns the demo's end of the pipeline: Filter (stapling on
// nothing extra here, but exercising the same entry point a real
// access-control layer would use) into MapSafe into Compile. db is nil
// when no postgres DSN was configured; in that case the handler reports
// the compiled statement instead of running it.
type queryHandler struct {
	entity paramql.Entity
	joins  []string
	spec   *paramql.Spec
	db     *sql.DB
}

func (h *queryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filtered := paramql.Filter(r.URL.RawQuery, nil)

	mapped, err := paramql.MapSafe(filtered, h.spec)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	compiled, err := paramql.Compile(mapped, h.entity, paramql.Options{Joins: h.joins})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if h.db == nil {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(compiled)
		return
	}

	rows, err := queryRows(r.Context(), h.db, compiled)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

// queryRows hands the compiled statement straight to database/sql —
// paramql's own output is already in lib/pq's "$n" placeholder dialect, so
// no further translation happens here — and scans each row into a
// column-name-keyed map.
func queryRows(ctx context.Context, db *sql.DB, q *paramql.CompiledQuery) ([]map[string]interface{}, error) {
	rows, err := db.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// connectDatabase opens and pings a postgres connection pool, registered
// through lib/pq's "postgres" driver. An empty dsn is a deliberate no-op:
// the demo still serves compiled statements without a database attached.
func connectDatabase(dsn string) *sql.DB {
	if dsn == "" {
		log.Println("no postgres dsn configured, compiled statements will not be executed")
		return nil
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Printf("postgres: open failed: %v", err)
		return nil
	}
	if err := db.Ping(); err != nil {
		log.Printf("postgres: ping failed: %v", err)
		db.Close()
		return nil
	}
	log.Println("postgres connection verified")
	return db
}

func main() {
	configPath := ""
	flag.StringVar(&configPath, "config", "", "path to a paramqldemo config file")
	flag.Parse()

	cfg, err := democonfig.Load(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	db := connectDatabase(cfg.Postgres.DSN)
	if db != nil {
		defer db.Close()
	}

	r := chi.NewRouter()
	r.Get("/users", (&queryHandler{
		entity: usersEntity(),
		joins:  cfg.Joins,
		spec:   mapperSpec(),
		db:     db,
	}).ServeHTTP)

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	log.Printf("paramqldemo listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
