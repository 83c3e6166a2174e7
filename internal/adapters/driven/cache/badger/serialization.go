package badger

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

// Serializers for the cache entry payload. Entries cross process
// restarts, so the encoding must stay stable; new fields go at the end.
var (
	stringSliceSer   = ord.NewSliceSer[string](ord.String)
	float32SliceSer  = ord.NewSliceSer[float32](raw.Float32)
	strategySliceSer = ord.NewSliceSer[domain.RetrievalStrategy](retrievalStrategySer{})
	resultSliceSer   = ord.NewSliceSer[domain.RankingResult](rankingResultSer{})
)

// MarshalCacheEntry serializes a cache entry to bytes.
func MarshalCacheEntry(entry *domain.CacheEntry) []byte {
	ser := cacheEntrySer{}
	buf := make([]byte, ser.Size(*entry))
	ser.Marshal(*entry, buf)
	return buf
}

// UnmarshalCacheEntry deserializes a cache entry from bytes.
func UnmarshalCacheEntry(data []byte) (*domain.CacheEntry, error) {
	entry, _, err := cacheEntrySer{}.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// retrievalStrategySer serializes the strategy name as a string.
type retrievalStrategySer struct{}

func (retrievalStrategySer) Marshal(s domain.RetrievalStrategy, bs []byte) int {
	return ord.String.Marshal(string(s), bs)
}

func (retrievalStrategySer) Unmarshal(bs []byte) (domain.RetrievalStrategy, int, error) {
	v, n, err := ord.String.Unmarshal(bs)
	return domain.RetrievalStrategy(v), n, err
}

func (retrievalStrategySer) Size(s domain.RetrievalStrategy) int {
	return ord.String.Size(string(s))
}

func (retrievalStrategySer) Skip(bs []byte) (int, error) {
	return ord.String.Skip(bs)
}

// timeSer serializes a time.Time as Unix milliseconds UTC.
type timeSer struct{}

func (timeSer) Marshal(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMilli(), bs)
}

func (timeSer) Unmarshal(bs []byte) (time.Time, int, error) {
	ms, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMilli(ms).UTC(), n, nil
}

func (timeSer) Size(t time.Time) int {
	return varint.Int64.Size(t.UnixMilli())
}

func (timeSer) Skip(bs []byte) (int, error) {
	return varint.Int64.Skip(bs)
}

type contentItemSer struct{}

func (contentItemSer) Marshal(c domain.ContentItem, bs []byte) (n int) {
	n = ord.String.Marshal(c.ID, bs)
	n += ord.String.Marshal(string(c.Type), bs[n:])
	n += ord.String.Marshal(c.Title, bs[n:])
	n += ord.String.Marshal(c.Body, bs[n:])
	n += stringSliceSer.Marshal(c.CulturalTags, bs[n:])
	n += stringSliceSer.Marshal(c.TherapeuticThemes, bs[n:])
	n += stringSliceSer.Marshal(c.TargetIssues, bs[n:])
	n += ord.String.Marshal(c.Source, bs[n:])
	n += ord.String.Marshal(c.Author, bs[n:])
	n += ord.String.Marshal(c.Period, bs[n:])
	n += float32SliceSer.Marshal(c.Embedding, bs[n:])
	n += ord.Bool.Marshal(c.Validated, bs[n:])
	n += raw.Float64.Marshal(c.BiasScore, bs[n:])
	n += timeSer{}.Marshal(c.CreatedAt, bs[n:])
	n += timeSer{}.Marshal(c.UpdatedAt, bs[n:])
	return
}

func (contentItemSer) Unmarshal(bs []byte) (c domain.ContentItem, n int, err error) {
	var n1 int
	c.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var typ string
	typ, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Type = domain.ContentType(typ)
	c.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Body, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.CulturalTags, n1, err = stringSliceSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.TherapeuticThemes, n1, err = stringSliceSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.TargetIssues, n1, err = stringSliceSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Author, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Period, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Embedding, n1, err = float32SliceSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Validated, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.BiasScore, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.CreatedAt, n1, err = timeSer{}.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.UpdatedAt, n1, err = timeSer{}.Unmarshal(bs[n:])
	n += n1
	return
}

func (contentItemSer) Size(c domain.ContentItem) (size int) {
	size = ord.String.Size(c.ID)
	size += ord.String.Size(string(c.Type))
	size += ord.String.Size(c.Title)
	size += ord.String.Size(c.Body)
	size += stringSliceSer.Size(c.CulturalTags)
	size += stringSliceSer.Size(c.TherapeuticThemes)
	size += stringSliceSer.Size(c.TargetIssues)
	size += ord.String.Size(c.Source)
	size += ord.String.Size(c.Author)
	size += ord.String.Size(c.Period)
	size += float32SliceSer.Size(c.Embedding)
	size += ord.Bool.Size(c.Validated)
	size += raw.Float64.Size(c.BiasScore)
	size += timeSer{}.Size(c.CreatedAt)
	size += timeSer{}.Size(c.UpdatedAt)
	return
}

func (s contentItemSer) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}

type rankingFactorsSer struct{}

func (rankingFactorsSer) Marshal(f domain.RankingFactors, bs []byte) (n int) {
	for _, v := range factorValues(f) {
		n += raw.Float64.Marshal(v, bs[n:])
	}
	return
}

func (rankingFactorsSer) Unmarshal(bs []byte) (f domain.RankingFactors, n int, err error) {
	vals := make([]float64, 10)
	var n1 int
	for i := range vals {
		vals[i], n1, err = raw.Float64.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	f.Semantic = vals[0]
	f.Keyword = vals[1]
	f.Cultural = vals[2]
	f.Therapeutic = vals[3]
	f.Personalization = vals[4]
	f.Recency = vals[5]
	f.Popularity = vals[6]
	f.Quality = vals[7]
	f.BiasAdjustment = vals[8]
	f.DiversityPenalty = vals[9]
	return
}

func (rankingFactorsSer) Size(f domain.RankingFactors) int {
	return 10 * raw.Float64.Size(0)
}

func (s rankingFactorsSer) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}

func factorValues(f domain.RankingFactors) [10]float64 {
	return [10]float64{
		f.Semantic, f.Keyword, f.Cultural, f.Therapeutic, f.Personalization,
		f.Recency, f.Popularity, f.Quality, f.BiasAdjustment, f.DiversityPenalty,
	}
}

type rankingResultSer struct{}

func (rankingResultSer) Marshal(r domain.RankingResult, bs []byte) (n int) {
	n = contentItemSer{}.Marshal(r.Item, bs)
	n += strategySliceSer.Marshal(r.Strategies, bs[n:])
	n += rankingFactorsSer{}.Marshal(r.Factors, bs[n:])
	n += raw.Float64.Marshal(r.Score, bs[n:])
	n += varint.Int.Marshal(r.Rank, bs[n:])
	n += ord.String.Marshal(string(r.Strategy), bs[n:])
	return
}

func (rankingResultSer) Unmarshal(bs []byte) (r domain.RankingResult, n int, err error) {
	var n1 int
	r.Item, n, err = contentItemSer{}.Unmarshal(bs)
	if err != nil {
		return
	}
	r.Strategies, n1, err = strategySliceSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Factors, n1, err = rankingFactorsSer{}.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Score, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Rank, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var strategy string
	strategy, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	r.Strategy = domain.RankingStrategy(strategy)
	return
}

func (rankingResultSer) Size(r domain.RankingResult) (size int) {
	size = contentItemSer{}.Size(r.Item)
	size += strategySliceSer.Size(r.Strategies)
	size += rankingFactorsSer{}.Size(r.Factors)
	size += raw.Float64.Size(r.Score)
	size += varint.Int.Size(r.Rank)
	size += ord.String.Size(string(r.Strategy))
	return
}

func (s rankingResultSer) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}

type cacheEntrySer struct{}

func (cacheEntrySer) Marshal(e domain.CacheEntry, bs []byte) (n int) {
	n = ord.String.Marshal(e.Key, bs)
	n += resultSliceSer.Marshal(e.Results, bs[n:])
	n += stringSliceSer.Marshal(e.ContentIDs, bs[n:])
	n += timeSer{}.Marshal(e.CreatedAt, bs[n:])
	n += timeSer{}.Marshal(e.ExpiresAt, bs[n:])
	n += ord.String.Marshal(string(e.Status), bs[n:])
	return
}

func (cacheEntrySer) Unmarshal(bs []byte) (e domain.CacheEntry, n int, err error) {
	var n1 int
	e.Key, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	e.Results, n1, err = resultSliceSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.ContentIDs, n1, err = stringSliceSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.CreatedAt, n1, err = timeSer{}.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.ExpiresAt, n1, err = timeSer{}.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var status string
	status, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	e.Status = domain.SearchStatus(status)
	return
}

func (cacheEntrySer) Size(e domain.CacheEntry) (size int) {
	size = ord.String.Size(e.Key)
	size += resultSliceSer.Size(e.Results)
	size += stringSliceSer.Size(e.ContentIDs)
	size += timeSer{}.Size(e.CreatedAt)
	size += timeSer{}.Size(e.ExpiresAt)
	size += ord.String.Size(string(e.Status))
	return
}

func (s cacheEntrySer) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}
