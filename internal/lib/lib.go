// Package lib groups supporting libraries that are not part of the
// handler/service/repository request path: email delivery, background
// jobs, and generic helpers.
package lib
