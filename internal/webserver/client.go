package webserver

import "net/http"

func serveClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(clientHTML))
}

var clientHTML = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>learnpath</title>
    <style>
        * {
            margin: 0;
            box-sizing: border-box;
        }
        body {
            background: #0F172A;
            color: #E2E8F0;
            font-family: system-ui, sans-serif;
            overflow: hidden;
        }
        #scene {
            width: 100vw;
            height: 100vh;
            display: block;
        }
        #bar {
            position: fixed;
            top: 12px;
            left: 12px;
            display: flex;
            gap: 6px;
        }
        #panel, #chat {
            position: fixed;
            right: 12px;
            width: 320px;
            padding: 12px;
            background: rgba(15, 23, 42, 0.85);
            border: 1px solid #334155;
            border-radius: 8px;
            display: none;
            white-space: pre-wrap;
        }
        #panel { top: 12px; }
        #chat { bottom: 12px; }
        #error {
            position: fixed;
            bottom: 12px;
            left: 12px;
            color: #F97316;
        }
    </style>
  </head>
  <body>
    <canvas id="scene"></canvas>
    <div id="bar">
      <input id="topic" placeholder="What do you want to learn?">
      <select id="level">
        <option>beginner</option>
        <option>intermediate</option>
        <option>advanced</option>
      </select>
      <button id="go">Generate</button>
      <button id="zoomin">+</button>
      <button id="zoomout">-</button>
      <button id="reset">Reset</button>
    </div>
    <div id="panel"></div>
    <div id="chat"></div>
    <div id="error"></div>
    <script type="text/javascript">
const canvas = document.getElementById("scene");
const ctx = canvas.getContext("2d");
const panel = document.getElementById("panel");
const chat = document.getElementById("chat");
const errorBox = document.getElementById("error");

let frame = null;

function resize() {
    canvas.width = window.innerWidth;
    canvas.height = window.innerHeight;
}
resize();

const proto = location.protocol === "https:" ? "wss://" : "ws://";
const ws = new WebSocket(proto + location.host + "/ws");

function send(msg) {
    if (ws.readyState === WebSocket.OPEN) {
        ws.send(JSON.stringify(msg));
    }
}

ws.onopen = () => {
    const params = new URLSearchParams(location.search);
    ws.send(JSON.stringify({
        topic: params.get("topic") || "",
        level: params.get("level") || "beginner",
        mode: params.get("mode") || "",
        width: canvas.width,
        height: canvas.height,
    }));
};

ws.onmessage = (ev) => {
    const msg = JSON.parse(ev.data);
    switch (msg.type) {
    case "frame":
        frame = msg.data;
        break;
    case "selected":
        if (msg.data) {
            panel.textContent = JSON.stringify(msg.data, null, 2);
            panel.style.display = "block";
        } else {
            panel.style.display = "none";
        }
        break;
    case "chatbot":
        chat.textContent = msg.data.message || JSON.stringify(msg.data);
        chat.style.display = "block";
        break;
    case "error":
        errorBox.textContent = msg.data.message;
        setTimeout(() => { errorBox.textContent = ""; }, 4000);
        break;
    }
};

function draw() {
    ctx.clearRect(0, 0, canvas.width, canvas.height);
    if (frame) {
        for (const e of frame.graph.edges) {
            const a = e.attributes;
            if (a.points.length < 2) continue;
            ctx.globalAlpha = a.opacity;
            ctx.strokeStyle = a.color;
            ctx.lineWidth = a.size;
            ctx.setLineDash([6, 6]);
            ctx.lineDashOffset = -a.flow * 12;
            ctx.beginPath();
            ctx.moveTo(a.points[0][0], a.points[0][1]);
            for (const p of a.points.slice(1)) ctx.lineTo(p[0], p[1]);
            ctx.stroke();
        }
        ctx.setLineDash([]);
        for (const n of frame.graph.nodes) {
            const a = n.attributes;
            if (a.hidden) continue;
            ctx.globalAlpha = a.decorationOpacity;
            ctx.fillStyle = a.color;
            ctx.beginPath();
            ctx.arc(a.x, a.y, a.glowSize, 0, Math.PI * 2);
            ctx.fill();
            ctx.globalAlpha = a.opacity;
            ctx.beginPath();
            ctx.arc(a.x, a.y, a.size, 0, Math.PI * 2);
            ctx.fill();
            if (a.ring) {
                ctx.strokeStyle = "#FFFFFF";
                ctx.lineWidth = 2;
                ctx.stroke();
            }
            ctx.fillStyle = "#E2E8F0";
            ctx.font = "12px system-ui";
            ctx.textAlign = "center";
            ctx.fillText(a.label, a.x, a.y - a.size - 6);
        }
        ctx.globalAlpha = 1;
    }
    requestAnimationFrame(draw);
}
requestAnimationFrame(draw);

function at(ev) {
    const r = canvas.getBoundingClientRect();
    return { x: ev.clientX - r.left, y: ev.clientY - r.top };
}

canvas.addEventListener("pointerdown", (ev) => send({ type: "pointerdown", ...at(ev) }));
canvas.addEventListener("pointermove", (ev) => send({ type: "pointermove", ...at(ev) }));
canvas.addEventListener("pointerup", (ev) => send({ type: "pointerup", ...at(ev) }));
canvas.addEventListener("click", (ev) => send({ type: "click", ...at(ev) }));
canvas.addEventListener("dblclick", (ev) => {
    if (frame && frame.selected) send({ type: "expand", id: frame.selected });
});
canvas.addEventListener("wheel", (ev) => {
    ev.preventDefault();
    send({ type: "wheel", deltaY: ev.deltaY });
}, { passive: false });

window.addEventListener("resize", () => {
    resize();
    send({ type: "resize", width: canvas.width, height: canvas.height });
});

document.getElementById("go").onclick = () => send({
    type: "generate",
    topic: document.getElementById("topic").value,
    level: document.getElementById("level").value,
});
document.getElementById("zoomin").onclick = () => send({ type: "zoomin" });
document.getElementById("zoomout").onclick = () => send({ type: "zoomout" });
document.getElementById("reset").onclick = () => send({ type: "reset" });
        </script>
  </body>
</html>`
