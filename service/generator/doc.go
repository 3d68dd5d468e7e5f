// Package generator draws randomized workloads: a pool partitioned into
// alternating used and free runs, and a request list whose total demand
// under-subscribes the free capacity so that no policy trivially fits
// everything.
package generator
