// Package segmentation converts between event lists and per-sample labels.
//
// Two representations of the same classification are supported:
//
//   - a typed label sequence aligned 1:1 with a sample series
//     (EventsToSegmentation / SegmentationToEvents), where onsets and
//     offsets are sample indices, and
//   - a boolean mask for one event name matched against timestamp values
//     (EventMask / MaskToEvents), with optional padding around each event.
//
// Offsets are inclusive everywhere: the sample at the offset belongs to the
// event. For non-overlapping events the index-based conversion round-trips
// exactly. EventTimeRatio summarizes what fraction of a recording is covered
// by one event type.
package segmentation
