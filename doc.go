// Package main is the entry point of agency-admin, the back-office of the
// agency marketing website. It serves an html admin to manage blog posts,
// services, portfolio items, jobs, about sections, pages and contact
// messages, a settings overlay for the site wide configuration and a public
// JSON api the website reads its content from.
package main
