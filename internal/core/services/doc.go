// Package services implements the core retrieval pipeline: query
// normalization and expansion, multi-strategy retrieval orchestration,
// feature extraction and ranking, the two-tier result cache, and the
// search service that ties them together behind the driving port.
package services
