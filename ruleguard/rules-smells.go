package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guard-ifs returning the same value are one guard.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	// Nested loops over provider/tool collections tend to hide O(n*m) scans
	// that a registry map lookup avoids.
	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)
}

func httpHandlers(m dsl.Matcher) {
	// Handlers must answer through the shared JSON helpers so every error body
	// keeps the {"error": ...} shape the UI parses.
	m.Match(`http.Error($w, $msg, $code)`).
		Where(m.File().PkgPath.Matches(`internal/api/handlers`)).
		Report(`use writeError for JSON error responses in handlers`)
}
