package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// latLon carries a candidate coordinate pair through the technique chain.
type latLon struct {
	lat float64
	lon float64
}

var (
	jsonLatRe = regexp.MustCompile(`"latitude"\s*:\s*"?(-?[0-9]{1,3}(?:\.[0-9]+)?)"?`)
	jsonLonRe = regexp.MustCompile(`"longitude"\s*:\s*"?(-?[0-9]{1,3}(?:\.[0-9]+)?)"?`)

	// 39°40'22.7"N 19°42'32.4"E, tolerating unicode prime marks.
	dmsRe = regexp.MustCompile(`(\d{1,3})°\s*(\d{1,2})['′]\s*([0-9]+(?:\.[0-9]+)?)["″]?\s*([NS])[\s,]+(\d{1,3})°\s*(\d{1,2})['′]\s*([0-9]+(?:\.[0-9]+)?)["″]?\s*([EW])`)

	iframePairRe  = regexp.MustCompile(`(-?\d{1,3}\.\d+)\s*,\s*(-?\d{1,3}\.\d+)`)
	iframeEmbedRe = regexp.MustCompile(`!2d(-?\d{1,3}\.\d+)!3d(-?\d{1,3}\.\d+)`)

	scriptLatRe = regexp.MustCompile(`(?i)\b(?:lat|latitude)\b["']?\s*[:=]\s*"?(-?\d{1,3}\.\d+)"?`)
	scriptLonRe = regexp.MustCompile(`(?i)\b(?:lng|lon|longitude)\b["']?\s*[:=]\s*"?(-?\d{1,3}\.\d+)"?`)

	metaPairRe = regexp.MustCompile(`(-?\d{1,3}\.\d+)\s*[;,]\s*(-?\d{1,3}\.\d+)`)
)

// Coordinates extracts a decimal-degrees pair, trying five source
// encodings in priority order: structured geodata blocks in scripts, DMS
// text, map-iframe parameters, inline script variables, and geo meta tags.
// Every raw match is range-validated; an invalid match falls through to
// the next technique. All techniques failing leaves the pair absent.
func (e *Extractor) Coordinates(d *Document) (lat, lon float64, ok bool) {
	pair, ok := firstOf(d,
		coordsFromGeoBlock,
		coordsFromDMS,
		coordsFromMapIframe,
		coordsFromScriptVars,
		coordsFromMetaTags,
	)
	if !ok {
		return 0, 0, false
	}
	return pair.lat, pair.lon, true
}

// coordsFromGeoBlock scans scripts for JSON-style geodata marked with a
// GeoCoordinates type, where latitude/longitude appear as string or
// numeric values.
func coordsFromGeoBlock(d *Document) (latLon, bool) {
	var pair latLon
	found := false
	d.eachScript(func(js string) bool {
		if !strings.Contains(js, "GeoCoordinates") {
			return true
		}
		latM := jsonLatRe.FindStringSubmatch(js)
		lonM := jsonLonRe.FindStringSubmatch(js)
		if latM == nil || lonM == nil {
			return true
		}
		p, ok := parsePair(latM[1], lonM[1])
		if !ok {
			return true
		}
		pair, found = p, true
		return false
	})
	return pair, found
}

func coordsFromDMS(d *Document) (latLon, bool) {
	lat, lon, ok := ParseDMS(d.Text())
	if !ok {
		return latLon{}, false
	}
	return validPair(lat, lon)
}

// ParseDMS converts the first degrees-minutes-seconds pair found in text
// to decimal degrees. Southern and western hemispheres are negative. It is
// a pure function over its input.
func ParseDMS(text string) (lat, lon float64, ok bool) {
	m := dmsRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	lat, ok = dmsToDecimal(m[1], m[2], m[3], m[4])
	if !ok {
		return 0, 0, false
	}
	lon, ok = dmsToDecimal(m[5], m[6], m[7], m[8])
	if !ok {
		return 0, 0, false
	}
	return lat, lon, true
}

func dmsToDecimal(degS, minS, secS, hemi string) (float64, bool) {
	deg, err1 := strconv.ParseFloat(degS, 64)
	min, err2 := strconv.ParseFloat(minS, 64)
	sec, err3 := strconv.ParseFloat(secS, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	dec := deg + min/60 + sec/3600
	if hemi == "S" || hemi == "W" {
		dec = -dec
	}
	return dec, true
}

// coordsFromMapIframe reads coordinates out of embedded map iframe URLs,
// either as a q=/center=/ll= query pair or the !2d<lon>!3d<lat> embed path.
func coordsFromMapIframe(d *Document) (latLon, bool) {
	var pair latLon
	found := false
	d.doc.Find("iframe[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		if !ok || !strings.Contains(strings.ToLower(src), "map") {
			return true
		}
		if m := iframeEmbedRe.FindStringSubmatch(src); m != nil {
			// Embed order is longitude first.
			if p, ok := parsePair(m[2], m[1]); ok {
				pair, found = p, true
				return false
			}
		}
		for _, key := range []string{"q=", "center=", "ll="} {
			idx := strings.Index(src, key)
			if idx < 0 {
				continue
			}
			if m := iframePairRe.FindStringSubmatch(src[idx:]); m != nil {
				if p, ok := parsePair(m[1], m[2]); ok {
					pair, found = p, true
					return false
				}
			}
		}
		return true
	})
	return pair, found
}

// coordsFromScriptVars matches inline variable assignments under the known
// lat/lng naming patterns. Both halves must come from the same script.
func coordsFromScriptVars(d *Document) (latLon, bool) {
	var pair latLon
	found := false
	d.eachScript(func(js string) bool {
		latM := scriptLatRe.FindStringSubmatch(js)
		lonM := scriptLonRe.FindStringSubmatch(js)
		if latM == nil || lonM == nil {
			return true
		}
		p, ok := parsePair(latM[1], lonM[1])
		if !ok {
			return true
		}
		pair, found = p, true
		return false
	})
	return pair, found
}

func coordsFromMetaTags(d *Document) (latLon, bool) {
	var pair latLon
	found := false
	d.doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		name, _ := sel.Attr("name")
		property, _ := sel.Attr("property")
		key := strings.ToLower(name + property)
		if !strings.Contains(key, "geo") && !strings.Contains(key, "icbm") {
			return true
		}
		content, ok := sel.Attr("content")
		if !ok {
			return true
		}
		m := metaPairRe.FindStringSubmatch(content)
		if m == nil {
			return true
		}
		p, ok := parsePair(m[1], m[2])
		if !ok {
			return true
		}
		pair, found = p, true
		return false
	})
	return pair, found
}

func parsePair(latS, lonS string) (latLon, bool) {
	lat, err1 := strconv.ParseFloat(latS, 64)
	lon, err2 := strconv.ParseFloat(lonS, 64)
	if err1 != nil || err2 != nil {
		return latLon{}, false
	}
	return validPair(lat, lon)
}

// validPair enforces the coordinate range invariants. Out-of-range pairs
// are discarded so the next technique gets its turn.
func validPair(lat, lon float64) (latLon, bool) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return latLon{}, false
	}
	return latLon{lat: lat, lon: lon}, true
}
