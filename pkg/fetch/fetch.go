package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/szuwgh/edgarsent/pkg/fileutil"
	"github.com/szuwgh/edgarsent/pkg/metrics"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://www.sec.gov/Archives"

type Options struct {
	BaseURL string
	// Path is the root of the <year>/QTR<q>/ tree.
	Path  string
	Forms []string
	// CIKs restricts downloads to these entities; empty means all.
	CIKs []int
	// Rate is the number of requests per second; <= 0 is unlimited.
	Rate      float64
	UserAgent string
	// Compress stores documents snappy-framed with a .sz suffix.
	Compress bool
}

// Stats counts the filings of one quarter.
type Stats struct {
	Matched int
	Fetched int
	Skipped int
	Failed  int
}

func (s *Stats) add(o Stats) {
	s.Matched += o.Matched
	s.Fetched += o.Fetched
	s.Skipped += o.Skipped
	s.Failed += o.Failed
}

type Fetcher struct {
	opts    Options
	client  *http.Client
	limiter *rate.Limiter
	forms   map[string]struct{}
	ciks    map[int]struct{}
	metrics *metrics.Metrics
}

func New(opts Options, client *http.Client, m *metrics.Metrics) *Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if client == nil {
		client = http.DefaultClient
	}
	if m == nil {
		m = metrics.New()
	}
	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	f := &Fetcher{
		opts:    opts,
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		forms:   make(map[string]struct{}, len(opts.Forms)),
		ciks:    make(map[int]struct{}, len(opts.CIKs)),
		metrics: m,
	}
	for _, form := range opts.Forms {
		f.forms[form] = struct{}{}
	}
	for _, cik := range opts.CIKs {
		f.ciks[cik] = struct{}{}
	}
	return f
}

func (f *Fetcher) match(r IndexRecord) bool {
	if _, ok := f.forms[r.Form]; len(f.forms) > 0 && !ok {
		return false
	}
	if _, ok := f.ciks[r.CIK]; len(f.ciks) > 0 && !ok {
		return false
	}
	return true
}

// Run fetches every quarter of every year, stopping early only when ctx is done.
func (f *Fetcher) Run(ctx context.Context, years, quarters []int) (Stats, error) {
	var total Stats
	for _, year := range years {
		for _, qtr := range quarters {
			s, err := f.Quarter(ctx, year, qtr)
			total.add(s)
			if err != nil {
				if ctx.Err() != nil {
					return total, err
				}
				log.Printf("skip %d QTR%d: %v", year, qtr, err)
				continue
			}
			log.Printf("%d QTR%d: matched %d, fetched %d, skipped %d, failed %d",
				year, qtr, s.Matched, s.Fetched, s.Skipped, s.Failed)
		}
	}
	return total, nil
}

// Quarter downloads the master index of year/qtr and every matching filing not
// already on disk. A failing filing is logged and counted; only a failing index
// or a done ctx return an error.
func (f *Fetcher) Quarter(ctx context.Context, year, qtr int) (Stats, error) {
	var s Stats
	if qtr < 1 || qtr > 4 {
		return s, errors.Errorf("invalid quarter %d", qtr)
	}
	body, err := f.get(ctx, fmt.Sprintf("%s/edgar/full-index/%d/QTR%d/master.idx", f.opts.BaseURL, year, qtr))
	if err != nil {
		return s, errors.Wrap(err, "fetch master index")
	}
	recs, err := ParseMasterIndex(body)
	body.Close()
	if err != nil {
		return s, err
	}

	dir := filepath.Join(f.opts.Path, fmt.Sprint(year), fmt.Sprintf("QTR%d", qtr))
	if err := os.MkdirAll(dir, 0777); err != nil {
		return s, errors.Wrap(err, "create quarter dir")
	}
	dups := make(map[string]int)
	for _, r := range recs {
		if !f.match(r) {
			continue
		}
		s.Matched++
		dups[r.key()]++
		name := r.FileName(dups[r.key()])
		if f.opts.Compress {
			name += fileutil.SnappyExt
		}
		dest := filepath.Join(dir, name)
		if _, err := os.Stat(dest); err == nil {
			s.Skipped++
			f.metrics.Downloads.WithLabelValues(metrics.StatusSkipped).Inc()
			continue
		}
		if err := f.download(ctx, f.opts.BaseURL+"/"+r.Path, dest); err != nil {
			if ctx.Err() != nil {
				return s, ctx.Err()
			}
			s.Failed++
			f.metrics.Downloads.WithLabelValues(metrics.StatusError).Inc()
			log.Println("skip", name, err)
			continue
		}
		s.Fetched++
		f.metrics.Downloads.WithLabelValues(metrics.StatusFetched).Inc()
	}
	return s, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("GET %s: %s", url, resp.Status)
	}
	return resp.Body, nil
}

// download writes url to dest through a temporary file so that an interrupted
// transfer never looks like a finished one.
func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	body, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	tmp := dest + ".tmp"
	if f.opts.Compress {
		_, err = fileutil.WriteSnappy(tmp, body)
	} else {
		err = writePlain(tmp, body)
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return errors.Wrap(os.Rename(tmp, dest), "rename download")
}

func writePlain(path string, r io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, r)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}
