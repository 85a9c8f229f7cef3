package hargen

import (
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/pb33f/tracelens/motor/model"
)

var (
	okStatuses    = []int{200, 200, 200, 201, 204, 301, 302, 304}
	errorStatuses = []int{400, 401, 403, 404, 429, 500, 502, 503}
	methods       = []string{"GET", "GET", "GET", "POST", "PUT", "DELETE", "PATCH"}
	mimeTypes     = []string{
		"application/json",
		"application/json; charset=utf-8",
		"text/html; charset=utf-8",
		"text/css",
		"application/javascript",
		"image/png",
	}
)

// EntryGenerator builds individual trace entries.
type EntryGenerator struct {
	dict *Dictionary
	rng  *rand.Rand
	opts GenerateOptions
	base time.Time
}

func NewEntryGenerator(dict *Dictionary, rng *rand.Rand, opts GenerateOptions) *EntryGenerator {
	return &EntryGenerator{
		dict: dict,
		rng:  rng,
		opts: opts,
		base: opts.StartTime,
	}
}

// GenerateEntry creates the entry at position index. Error and slow entries are
// drawn with the configured rates; slow entries always exceed one second.
func (eg *EntryGenerator) GenerateEntry(index int) model.Entry {
	isError := eg.rng.Float64() < eg.opts.ErrorRate
	isSlow := eg.rng.Float64() < eg.opts.SlowRate

	timings := eg.generateTimings(isSlow)

	status := okStatuses[eg.rng.Intn(len(okStatuses))]
	if isError {
		status = errorStatuses[eg.rng.Intn(len(errorStatuses))]
	}

	mimeType := mimeTypes[eg.rng.Intn(len(mimeTypes))]
	start := eg.base.Add(time.Duration(index) * 250 * time.Millisecond)

	return model.Entry{
		Start:    start.UTC().Format(time.RFC3339Nano),
		Time:     elapsed(timings),
		Request:  eg.generateRequest(),
		Response: eg.generateResponse(status, mimeType),
		Cache:    []byte("{}"),
		Timings:  timings,
	}
}

func (eg *EntryGenerator) generateRequest() model.Request {
	method := methods[eg.rng.Intn(len(methods))]
	url, params := eg.generateURL()

	req := model.Request{
		Method:      method,
		URL:         url,
		HTTPVersion: "HTTP/1.1",
		Headers: []model.NameValuePair{
			{Name: "Accept", Value: "*/*"},
			{Name: "User-Agent", Value: "Mozilla/5.0 (compatible; hargen/1.0)"},
		},
		QueryParams: params,
	}
	if method == "POST" || method == "PUT" || method == "PATCH" {
		req.Body = &model.PostData{
			MIMEType: "application/json",
			Text:     fmt.Sprintf(`{"%s":"%s"}`, eg.dict.RandomWord(eg.rng), eg.dict.RandomWord(eg.rng)),
		}
	}
	return req
}

func (eg *EntryGenerator) generateResponse(status int, mimeType string) model.Response {
	return model.Response{
		StatusCode:  status,
		StatusText:  http.StatusText(status),
		HTTPVersion: "HTTP/1.1",
		Headers: []model.NameValuePair{
			{Name: "Content-Type", Value: mimeType},
			{Name: "Cache-Control", Value: "no-cache"},
		},
		Content: model.Content{
			Size:     int64(eg.rng.Intn(64*1024) + 128),
			MIMEType: mimeType,
		},
	}
}

func (eg *EntryGenerator) generateURL() (string, []model.NameValuePair) {
	domain := eg.opts.Domains[eg.rng.Intn(len(eg.opts.Domains))]

	segments := make([]string, eg.rng.Intn(3)+1)
	for i := range segments {
		segments[i] = eg.dict.RandomWord(eg.rng)
	}
	url := "https://" + domain + "/" + strings.Join(segments, "/")

	var params []model.NameValuePair
	if eg.rng.Intn(3) == 0 {
		params = []model.NameValuePair{{Name: "q", Value: eg.dict.RandomWord(eg.rng)}}
		url += "?q=" + params[0].Value
	}
	return url, params
}

// generateTimings splits the round trip into phases; -1 marks phases that did
// not happen on a reused connection.
func (eg *EntryGenerator) generateTimings(slow bool) model.Timings {
	wait := float64(eg.rng.Intn(300) + 20)
	if slow {
		wait = float64(eg.rng.Intn(2000) + 1100)
	}

	t := model.Timings{
		Blocked: float64(eg.rng.Intn(10)),
		DNS:     -1,
		Connect: -1,
		SSL:     -1,
		Send:    float64(eg.rng.Intn(5)),
		Wait:    wait,
		Receive: float64(eg.rng.Intn(50)),
	}

	// fresh connection
	if eg.rng.Intn(4) == 0 {
		t.DNS = float64(eg.rng.Intn(40) + 1)
		t.SSL = float64(eg.rng.Intn(60) + 10)
		t.Connect = t.SSL + float64(eg.rng.Intn(30)+5)
	}
	return t
}

// elapsed sums the phases that happened; ssl is already part of connect.
func elapsed(t model.Timings) float64 {
	var total float64
	for _, v := range []float64{t.Blocked, t.DNS, t.Connect, t.Send, t.Wait, t.Receive} {
		if v > 0 {
			total += v
		}
	}
	return total
}
