// Package useragent classifies HTTP User-Agent headers into browser, OS and
// device class for session metadata.
//
// Parse never fails; fields it cannot recognize come back as "Unknown". The
// Short method renders a compact label ("Chrome 120 on macOS") for display in
// session listings.
//
//	ua := useragent.Parse(r.UserAgent())
//	if !ua.IsBot() {
//		label := ua.Short()
//	}
//
// The parser is token-based and deliberately small. It covers the major
// desktop and mobile browsers plus common crawlers; exotic agents degrade to
// "Unknown" rather than misclassify.
package useragent
