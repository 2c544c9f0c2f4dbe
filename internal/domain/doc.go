// Package domain models NASA FIRMS active-fire detection data.
//
// # Data Source
//
// Detections come from the NASA FIRMS area API
// (https://firms.modaps.eosdis.nasa.gov/api/area/), which serves near
// real-time active-fire observations as CSV, one feed per satellite sensor.
// The default sensor set is MODIS_NRT, VIIRS_NOAA20_NRT and
// VIIRS_SUOMI_NPP_NRT. Column sets differ between sensors, so every row is
// carried as a header-keyed record until normalization.
//
// # FIRMS Data Conventions
//
// Confidence encoding (inconsistent across sensors):
//
//	MODIS reports a numeric confidence in 0-100.
//	VIIRS reports a categorical label: "low", "nominal", or "high".
//	Labels map to fixed percentages: low=30, nominal=60, high=90.
//	Anything that is neither a known label nor a parseable number
//	normalizes to 0, which the reliability filter then discards.
//
// Acquisition time:
//
//	HHMM as an integer in UTC, e.g. 1345 = 13:45. Values below 1000 lose
//	their leading zero in the CSV (130 = 01:30). Minutes are not validated;
//	a malformed value like 1297 renders as "12:97" rather than being
//	silently corrected, so downstream consumers see what the feed sent.
//
// FRP (Fire Radiative Power):
//
//	Megawatts, a proxy for fire intensity. Missing or unparseable FRP is
//	treated as 0 (no power reported), not as unknown.
//	Intensity tiers: <30 Low, <100 Moderate, otherwise High.
//
// Coordinates:
//
//	Latitude/longitude may be absent from a sensor's column set. Missing
//	coordinates propagate as NaN, never as 0, and yield a NaN distance
//	that sorts after every defined distance.
//
// # Bounding Box
//
// The area API takes a minLon,minLat,maxLon,maxLat box. The box is derived
// from a center point and radius using 111 km per degree of latitude, with
// the longitude span widened by 1/cos(lat). Within 0.1 degrees of the poles
// the cosine is pinned to 0.0001 to avoid a division blow-up; this is a
// known approximation, acceptable because wildfire monitoring does not
// happen at the poles.
//
// # Reliability Filter
//
// Reports only contain detections with normalized confidence >= 40%. Risk
// tiers use independent thresholds (>=70 High, >=50 Medium, else Low), so
// the [40,50) band classifies as Low risk despite passing the filter. That
// asymmetry is intentional and preserved.
//
// # ID Generation
//
// Detection IDs are deterministic SHA-256 hashes of
// satellite|lat|lon|date|time, prefixed with the sensor family. Re-running
// the pipeline over the same feed rows produces the same IDs. See
// [generateID].
package domain
