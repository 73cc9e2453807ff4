// Package profile parses deployment profiles.
//
// A profile is an ini file. Every section except [settings] names a group;
// the keys of a group are entry paths relative to the group's source root
// and their values carry an optional destination override plus action
// annotations. A [<group>.settings] section overrides the profile-wide
// [settings] for one group.
//
// Parse validates the whole profile in a single pass and rejects it on the
// first violation with a CONFIG_INVALID error naming the group, the entry
// and the reason. Nothing is resolved against the filesystem here; that is
// the plan builder's job.
package profile
